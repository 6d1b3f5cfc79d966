package decision

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormed = `{
	"decision": "approved",
	"reasoning": "Credit score 700 places the applicant in the low risk tier; DTI 32.0% is under the 40% ceiling.",
	"riskLevel": "low",
	"appliedRules": ["Credit score tier rule", "DTI ceiling rule"]
}`

func TestParse_WellFormed(t *testing.T) {
	res, err := Parse(wellFormed)
	require.NoError(t, err)

	assert.Equal(t, OutcomeApproved, res.Decision)
	assert.Equal(t, RiskLow, res.RiskLevel)
	assert.Equal(t, []string{"Credit score tier rule", "DTI ceiling rule"}, res.AppliedRules)
	assert.False(t, res.IsFallback())
}

func TestParse_FencedJSONAccepted(t *testing.T) {
	fenced := "```json\n" + wellFormed + "\n```"
	res, err := Parse(fenced)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApproved, res.Decision)
}

func TestParse_OutOfEnumDecision(t *testing.T) {
	raw := strings.Replace(wellFormed, `"approved"`, `"maybe"`, 1)

	_, err := Parse(raw)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.NotEmpty(t, perr.Violations)
	assert.Contains(t, perr.Error(), "decision")
}

func TestParse_OutOfEnumRiskLevel(t *testing.T) {
	raw := strings.Replace(wellFormed, `"low"`, `"extreme"`, 1)

	_, err := Parse(raw)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "riskLevel")
}

func TestParse_MissingFieldsAllReported(t *testing.T) {
	_, err := Parse(`{"decision": "denied"}`)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.GreaterOrEqual(t, len(perr.Violations), 3)
}

func TestParse_NotJSON(t *testing.T) {
	_, err := Parse("the application looks fine to me")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("   ")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestFallback_Shape(t *testing.T) {
	res := Fallback("policy document unavailable")

	assert.Equal(t, OutcomeDenied, res.Decision)
	assert.Equal(t, RiskHigh, res.RiskLevel)
	assert.Equal(t, "policy document unavailable", res.Reasoning)
	assert.Equal(t, []string{FallbackRule}, res.AppliedRules)
	assert.True(t, res.IsFallback())
}
