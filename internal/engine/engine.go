// Package engine sequences the loan decision pipeline: load policy, validate
// the application, build the prompt, call the text-generation service, and
// parse the response into a validated decision. Any step failing
// short-circuits to the fixed fallback payload — callers always get a
// well-formed decision.Result and never an error.
package engine

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"loan-backend/internal/application"
	"loan-backend/internal/decision"
	"loan-backend/internal/llm"
	"loan-backend/internal/metrics"
	"loan-backend/internal/policy"
	"loan-backend/internal/prompt"
)

// Fallback causes, used as metric labels and log fields.
const (
	causeDocument = "document"
	causeInput    = "input"
	causeService  = "service"
	causeParse    = "parse"
)

// Cache stores validated decision JSON under a prompt hash. Optional.
type Cache interface {
	Get(ctx context.Context, promptHash string) (string, bool)
	Set(ctx context.Context, promptHash, decisionJSON string) error
}

// Engine holds the pipeline's immutable configuration. A single Engine is
// safe for concurrent use; each Decide call is independent and stateless.
type Engine struct {
	client llm.Client
	cache  Cache
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCache wires an optional decision cache.
func WithCache(c Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New builds an Engine around the given text-generation client.
func New(client llm.Client, opts ...Option) *Engine {
	e := &Engine{
		client: client,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Decide evaluates one loan application against the policy document at
// policyPath. raw is the applicant record as a decoded JSON mapping. The
// returned Result is genuine when every step succeeded and the fixed
// fallback payload otherwise; the two share the same shape.
func (e *Engine) Decide(ctx context.Context, policyPath string, raw map[string]any) decision.Result {
	log := e.logger

	policyText := policy.Load(policyPath)
	if policyText == "" {
		return e.fallback(log, causeDocument, "policy document unavailable", nil)
	}

	rec, err := application.Parse(raw)
	if err != nil {
		return e.fallback(log, causeInput, err.Error(), err)
	}
	log = log.With(zap.String("applicant_id", rec.ApplicantID))

	messages := prompt.Build(policyText, rec, decision.FormatInstructions())
	promptHash := prompt.Hash(messages)
	log = log.With(zap.String("prompt_hash", promptHash))

	if cached, ok := e.cacheGet(ctx, promptHash); ok {
		metrics.CacheHitsTotal.Inc()
		metrics.DecisionsTotal.WithLabelValues("decision").Inc()
		log.Info("decision served from cache", zap.String("decision", string(cached.Decision)))
		return cached
	}

	if e.client == nil {
		return e.fallback(log, causeService, "loan decision service unavailable: no client configured", nil)
	}

	started := time.Now()
	response, err := e.client.Complete(ctx, messages)
	metrics.LLMRequestDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		return e.fallback(log, causeService, "loan decision service unavailable: "+err.Error(), err)
	}

	result, err := decision.Parse(response)
	if err != nil {
		return e.fallback(log, causeParse, err.Error(), err)
	}

	e.cacheSet(ctx, log, promptHash, result)
	metrics.DecisionsTotal.WithLabelValues("decision").Inc()
	log.Info("loan decision produced",
		zap.String("decision", string(result.Decision)),
		zap.String("risk_level", string(result.RiskLevel)),
		zap.Int("applied_rules", len(result.AppliedRules)),
	)
	return result
}

func (e *Engine) fallback(log *zap.Logger, cause, reason string, err error) decision.Result {
	metrics.DecisionsTotal.WithLabelValues("fallback").Inc()
	metrics.FallbacksTotal.WithLabelValues(cause).Inc()
	log.Warn("loan decision fell back",
		zap.String("cause", cause),
		zap.String("reason", reason),
		zap.Error(err),
	)
	return decision.Fallback(reason)
}

// cacheGet returns a cached decision, revalidating the stored JSON so a
// corrupt entry degrades to a miss instead of leaking an unvalidated payload.
func (e *Engine) cacheGet(ctx context.Context, promptHash string) (decision.Result, bool) {
	if e.cache == nil {
		return decision.Result{}, false
	}
	cached, ok := e.cache.Get(ctx, promptHash)
	if !ok {
		return decision.Result{}, false
	}
	result, err := decision.Parse(cached)
	if err != nil {
		return decision.Result{}, false
	}
	return result, true
}

func (e *Engine) cacheSet(ctx context.Context, log *zap.Logger, promptHash string, result decision.Result) {
	if e.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, promptHash, string(data)); err != nil {
		log.Warn("decision cache write failed", zap.Error(err))
	}
}
