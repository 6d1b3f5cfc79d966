// Package application defines the structured loan application record and its
// validation against the fixed applicant schema.
package application

import (
	"fmt"
	"math"
	"strings"
)

// Record is a validated loan application. Field names match the wire format
// exactly; a Record is immutable once handed to the pipeline.
type Record struct {
	ApplicantID      string  `json:"applicantId"`
	RequestedAmount  float64 `json:"requestedAmount"`
	AnnualIncome     float64 `json:"annualIncome"`
	MonthlyDebt      float64 `json:"monthlyDebt"`
	CreditScore      int     `json:"creditScore"`
	EmploymentMonths int     `json:"employmentMonths"`
	IsFirstTimeBuyer bool    `json:"isFirstTimeBuyer"`
	IsSelfEmployed   bool    `json:"isSelfEmployed"`
}

// DebtToIncome returns the annualized debt-to-income ratio as a percentage.
// Parse guarantees AnnualIncome > 0, so the division is always defined.
func (r Record) DebtToIncome() float64 {
	return r.MonthlyDebt * 12 / r.AnnualIncome * 100
}

// FieldError describes a single offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated constraint, not just the first one.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid application: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

var requiredFields = []string{
	"applicantId",
	"requestedAmount",
	"annualIncome",
	"monthlyDebt",
	"creditScore",
	"employmentMonths",
	"isFirstTimeBuyer",
	"isSelfEmployed",
}

// Parse builds a well-typed Record from a raw field mapping, as decoded from
// JSON. It rejects missing fields, non-numeric values for numeric fields,
// fractional values for integer fields, non-boolean flags, and out-of-range
// amounts. All violations are reported together in a *ValidationError.
func Parse(raw map[string]any) (Record, error) {
	verr := &ValidationError{}

	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			verr.add(field, "required field missing")
		}
	}

	var rec Record
	rec.ApplicantID = stringField(raw, "applicantId", verr)
	rec.RequestedAmount = numberField(raw, "requestedAmount", verr)
	rec.AnnualIncome = numberField(raw, "annualIncome", verr)
	rec.MonthlyDebt = numberField(raw, "monthlyDebt", verr)
	rec.CreditScore = intField(raw, "creditScore", verr)
	rec.EmploymentMonths = intField(raw, "employmentMonths", verr)
	rec.IsFirstTimeBuyer = boolField(raw, "isFirstTimeBuyer", verr)
	rec.IsSelfEmployed = boolField(raw, "isSelfEmployed", verr)

	if len(verr.Fields) > 0 {
		return Record{}, verr
	}

	if rec.ApplicantID == "" {
		verr.add("applicantId", "must not be empty")
	}
	if rec.RequestedAmount < 0 {
		verr.add("requestedAmount", "must not be negative")
	}
	if rec.AnnualIncome <= 0 {
		verr.add("annualIncome", "must be greater than zero")
	}
	if rec.MonthlyDebt < 0 {
		verr.add("monthlyDebt", "must not be negative")
	}
	if rec.CreditScore < 0 {
		verr.add("creditScore", "must not be negative")
	}
	if rec.EmploymentMonths < 0 {
		verr.add("employmentMonths", "must not be negative")
	}

	if len(verr.Fields) > 0 {
		return Record{}, verr
	}
	return rec, nil
}

func stringField(raw map[string]any, field string, verr *ValidationError) string {
	val, ok := raw[field]
	if !ok {
		return ""
	}
	s, ok := val.(string)
	if !ok {
		verr.add(field, fmt.Sprintf("expected string, got %T", val))
		return ""
	}
	return strings.TrimSpace(s)
}

func numberField(raw map[string]any, field string, verr *ValidationError) float64 {
	val, ok := raw[field]
	if !ok {
		return 0
	}
	f, ok := asFloat(val)
	if !ok {
		verr.add(field, fmt.Sprintf("expected number, got %T", val))
		return 0
	}
	return f
}

func intField(raw map[string]any, field string, verr *ValidationError) int {
	val, ok := raw[field]
	if !ok {
		return 0
	}
	f, ok := asFloat(val)
	if !ok {
		verr.add(field, fmt.Sprintf("expected integer, got %T", val))
		return 0
	}
	if f != math.Trunc(f) {
		verr.add(field, "expected integer, got fractional number")
		return 0
	}
	return int(f)
}

func boolField(raw map[string]any, field string, verr *ValidationError) bool {
	val, ok := raw[field]
	if !ok {
		return false
	}
	b, ok := val.(bool)
	if !ok {
		verr.add(field, fmt.Sprintf("expected boolean, got %T", val))
		return false
	}
	return b
}

// asFloat accepts the numeric shapes that survive JSON decoding plus plain
// Go ints handed over by in-process callers.
func asFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
