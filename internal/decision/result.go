// Package decision defines the loan decision schema, the strict parser for
// generative-service output, and the fixed fallback payload.
package decision

// Outcome is the final verdict on an application.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeDenied   Outcome = "denied"
)

// RiskLevel is the risk tier assigned alongside the verdict.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// FallbackRule is the marker entry in appliedRules that lets consumers tell
// fallback payloads apart from genuine decisions.
const FallbackRule = "Error handling rule"

// Result is the structured decision returned for every pipeline invocation.
// Fallback payloads share this exact shape, so callers never branch on
// success versus failure at the type level.
type Result struct {
	Decision     Outcome   `json:"decision"`
	Reasoning    string    `json:"reasoning"`
	RiskLevel    RiskLevel `json:"riskLevel"`
	AppliedRules []string  `json:"appliedRules"`
}

// IsFallback reports whether the result was produced by the fallback path.
func (r Result) IsFallback() bool {
	for _, rule := range r.AppliedRules {
		if rule == FallbackRule {
			return true
		}
	}
	return false
}

// Fallback builds the fixed failure payload: always denied, always high
// risk, with the marker rule and a human-readable cause in the reasoning.
func Fallback(reason string) Result {
	return Result{
		Decision:     OutcomeDenied,
		Reasoning:    reason,
		RiskLevel:    RiskHigh,
		AppliedRules: []string{FallbackRule},
	}
}
