package llm

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"strings"
	"time"
)

// WithRetry wraps base with a bounded retry policy for transient service
// failures. maxAttempts counts the initial call, so maxAttempts <= 1 returns
// base unchanged. Delays grow exponentially from baseDelay with jitter.
func WithRetry(base Client, maxAttempts int, baseDelay time.Duration) Client {
	if base == nil || maxAttempts <= 1 {
		return base
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return &retryingClient{base: base, maxAttempts: maxAttempts, baseDelay: baseDelay}
}

type retryingClient struct {
	base        Client
	maxAttempts int
	baseDelay   time.Duration
}

func (r *retryingClient) Complete(ctx context.Context, messages []Message) (string, error) {
	var lastErr error
	delay := r.baseDelay
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		resp, err := r.base.Complete(ctx, messages)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !shouldRetry(err) || attempt == r.maxAttempts {
			return "", err
		}
		select {
		case <-time.After(jitter(delay)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		delay *= 2
	}
	return "", lastErr
}

// jitter spreads the delay over [delay/2, delay) to avoid retry bursts.
func jitter(delay time.Duration) time.Duration {
	half := delay / 2
	return half + time.Duration(rand.Int63n(int64(half)))
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		return false
	}
	msg := strings.ToLower(svcErr.Error())
	if strings.Contains(msg, "status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "status 429") || strings.Contains(msg, "rate limit") {
		return true
	}
	if strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "eof") {
		return true
	}
	return false
}
