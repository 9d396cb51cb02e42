package handlers

import (
	"errors"
	"net/http"
	"testing"

	"finai/db"
	"finai/models"
	"finai/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to the Fin.AI API", decode(t, w)["message"])
}

func TestMarketNews(t *testing.T) {
	env := newTestEnv(t)
	env.market.news = []models.Headline{{Name: "Markets rally", URL: "https://news.test/1"}}

	w := env.do(http.MethodGet, "/api/news", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"newsItems":[{"name":"Markets rally","url":"https://news.test/1"}]}`, w.Body.String())

	env.market.err = errors.New("boom")
	w = env.do(http.MethodGet, "/api/news", nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An error occurred while fetching news data", decode(t, w)["error"])

	env.market.err = services.ErrQuotaExceeded
	w = env.do(http.MethodGet, "/api/news", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestStocks(t *testing.T) {
	env := newTestEnv(t)
	env.market.rows = []map[string]string{{"Name": "TCS", "CMP": "3900"}}

	w := env.do(http.MethodGet, "/api/stocks", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://screens.test/top", env.market.url)
	assert.JSONEq(t, `{"stocks":[{"Name":"TCS","CMP":"3900"}]}`, w.Body.String())
}

func TestErrorResponse(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{db.ErrEmailTaken, http.StatusConflict},
		{db.ErrUserNotFound, http.StatusNotFound},
		{services.ErrTickerNotFound, http.StatusNotFound},
		{services.ErrRateLimited, http.StatusTooManyRequests},
		{&services.UpstreamError{Err: errors.New("x")}, http.StatusBadGateway},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, body := errorResponse(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.NotEmpty(t, body["error"])
	}
}
