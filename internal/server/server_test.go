package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"loan-backend/internal/decision"
	"loan-backend/internal/engine"
	"loan-backend/internal/llm"
)

type stubClient struct {
	response string
}

func (s *stubClient) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	return s.response, nil
}

const stubDecision = `{
	"decision": "approved",
	"reasoning": "low risk, DTI under ceiling",
	"riskLevel": "low",
	"appliedRules": ["DTI ceiling rule"]
}`

const validBody = `{
	"applicantId": "APP_USER_001",
	"requestedAmount": 250000,
	"annualIncome": 75000,
	"monthlyDebt": 2000,
	"creditScore": 700,
	"employmentMonths": 24,
	"isFirstTimeBuyer": false,
	"isSelfEmployed": false
}`

func newTestRouter(t *testing.T, policyPath string) *gin.Engine {
	t.Helper()
	eng := engine.New(&stubClient{response: stubDecision})
	return New(eng, policyPath, zap.NewNop()).Router()
}

func enginePolicyPath() string {
	return filepath.Join("..", "engine", "testdata", "policy.txt")
}

func TestHandleDecide_OK(t *testing.T) {
	router := newTestRouter(t, enginePolicyPath())

	req := httptest.NewRequest(http.MethodPost, "/v1/decisions", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"decision":"approved"`)
	assert.Contains(t, rec.Body.String(), `"riskLevel":"low"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHandleDecide_FallbackStillHTTP200(t *testing.T) {
	router := newTestRouter(t, "no-such-policy.pdf")

	req := httptest.NewRequest(http.MethodPost, "/v1/decisions", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Pipeline failures surface as the uniform fallback payload, not as an
	// HTTP error.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"decision":"denied"`)
	assert.Contains(t, rec.Body.String(), decision.FallbackRule)
}

func TestHandleDecide_MalformedBodyRejected(t *testing.T) {
	router := newTestRouter(t, enginePolicyPath())

	req := httptest.NewRequest(http.MethodPost, "/v1/decisions", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, enginePolicyPath())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, enginePolicyPath())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
