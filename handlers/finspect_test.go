package handlers

import (
	"context"
	"net/http"
	"testing"

	"finai/middleware"
	"finai/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/finspect/analyze", gin.H{"type": "sector", "input": "Banking"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.KindSector, env.analyst.kind)
	assert.Equal(t, "Banking", env.analyst.subject)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "looks fine", data["analysis"])
	assert.Equal(t, "not advice", data["disclaimer"])
	assert.NotEmpty(t, data["timestamp"])
}

func TestAnalyzeCompanyAlias(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/finspect/analyze", gin.H{"company": "Infosys"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.KindFundamental, env.analyst.kind)
	assert.Equal(t, "Infosys", env.analyst.subject)
}

func TestAnalyzeSectorRoute(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/finspect/analyze/sector", gin.H{"input": "Pharma"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.KindSector, env.analyst.kind)
}

func TestAnalyzeErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &services.ValidationError{Problems: []string{"Input is required"}}, http.StatusBadRequest},
		{"no key", services.ErrNotConfigured, http.StatusInternalServerError},
		{"bad shape", services.ErrInvalidResponse, http.StatusInternalServerError},
		{"upstream", &services.UpstreamError{Err: assert.AnError, StatusCode: http.StatusForbidden, Details: map[string]any{"message": "API key not valid"}}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.analyst.err = tc.err

			w := env.do(http.MethodPost, "/api/finspect/analyze", gin.H{"type": "fundamental", "input": "TCS"}, "")
			assert.Equal(t, tc.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestAnalyzeInvalidResponseMessage(t *testing.T) {
	env := newTestEnv(t)
	env.analyst.err = services.ErrInvalidResponse

	w := env.do(http.MethodPost, "/api/finspect/analyze", gin.H{"type": "sector", "input": "IT"}, "")
	assert.Equal(t, "Invalid response format", decode(t, w)["error"])
}

func TestPersonalFinancePlan(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/personal-finance/plan", gin.H{"age": 30, "dependents": 0}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(30), env.analyst.info["age"])
	assert.Equal(t, float64(0), env.analyst.info["dependents"])

	w = env.do(http.MethodPost, "/api/personal-finance/plan", "not json", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeGatesSectorByPlan(t *testing.T) {
	t.Setenv("PLAN_GATING_ENABLED", "true")
	env := newTestEnv(t)
	token := env.register(t, "asha@example.com", "hunter22")
	user, err := env.users.GetUserByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	require.NoError(t, env.users.UpdateSubscription(context.Background(), user.ID, services.PlanBronze, services.StatusActive))

	h := env.handler
	env.router.POST("/gated/analyze",
		middleware.RequireFeature(h.Tokens, env.users, h.Plans, services.FeatureAnalysisFundamental), h.Analyze)

	w := env.do(http.MethodPost, "/gated/analyze", gin.H{"type": "sector", "input": "Banking"}, token)
	require.Equal(t, http.StatusForbidden, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Upgrade required", body["error"])
	assert.Equal(t, "bronze", body["current_plan"])
	assert.Equal(t, "gold", body["required_plan"])
	assert.Empty(t, env.analyst.kind)

	w = env.do(http.MethodPost, "/gated/analyze", gin.H{"type": "fundamental", "input": "Infosys"}, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.KindFundamental, env.analyst.kind)

	require.NoError(t, env.users.UpdateSubscription(context.Background(), user.ID, services.PlanGold, services.StatusActive))
	w = env.do(http.MethodPost, "/gated/analyze", gin.H{"type": "sector", "input": "Banking"}, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.KindSector, env.analyst.kind)
}
