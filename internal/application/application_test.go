package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() map[string]any {
	return map[string]any{
		"applicantId":      "APP_USER_001",
		"requestedAmount":  250000.0,
		"annualIncome":     75000.0,
		"monthlyDebt":      2000.0,
		"creditScore":      700.0,
		"employmentMonths": 24.0,
		"isFirstTimeBuyer": false,
		"isSelfEmployed":   false,
	}
}

func TestParse_ValidRecord(t *testing.T) {
	rec, err := Parse(validRaw())
	require.NoError(t, err)

	assert.Equal(t, "APP_USER_001", rec.ApplicantID)
	assert.Equal(t, 250000.0, rec.RequestedAmount)
	assert.Equal(t, 700, rec.CreditScore)
	assert.Equal(t, 24, rec.EmploymentMonths)
	assert.False(t, rec.IsFirstTimeBuyer)
	assert.False(t, rec.IsSelfEmployed)
}

func TestParse_MissingField(t *testing.T) {
	raw := validRaw()
	delete(raw, "creditScore")

	_, err := Parse(raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "creditScore", verr.Fields[0].Field)
	assert.Contains(t, verr.Error(), "creditScore: required field missing")
}

func TestParse_WrongTypes(t *testing.T) {
	raw := validRaw()
	raw["annualIncome"] = "75000"
	raw["isSelfEmployed"] = "no"
	raw["creditScore"] = 700.5

	_, err := Parse(raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Contains(t, fields, "annualIncome")
	assert.Contains(t, fields, "isSelfEmployed")
	assert.Equal(t, "expected integer, got fractional number", fields["creditScore"])
}

func TestParse_RangeViolationsAllReported(t *testing.T) {
	raw := validRaw()
	raw["requestedAmount"] = -1.0
	raw["annualIncome"] = 0.0
	raw["monthlyDebt"] = -50.0

	_, err := Parse(raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
	assert.Contains(t, verr.Error(), "annualIncome: must be greater than zero")
}

func TestParse_IntegerValuesFromInProcessCallers(t *testing.T) {
	raw := validRaw()
	raw["creditScore"] = 700
	raw["employmentMonths"] = int64(24)

	rec, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, 700, rec.CreditScore)
	assert.Equal(t, 24, rec.EmploymentMonths)
}

func TestDebtToIncome(t *testing.T) {
	rec := Record{MonthlyDebt: 2000, AnnualIncome: 75000}
	assert.InDelta(t, 32.0, rec.DebtToIncome(), 1e-9)
}
