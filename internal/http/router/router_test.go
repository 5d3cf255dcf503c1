package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tradie_receptionist/internal/health"
	apphttp "tradie_receptionist/internal/http"
	"tradie_receptionist/platform/config"
	"tradie_receptionist/platform/httpkit"
	"tradie_receptionist/platform/logger"
	"tradie_receptionist/platform/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type oneOperator struct{}

func (oneOperator) Count() int { return 1 }

func newTestApp(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	met := metrics.New()
	met.WebhookEvent("assistant-request")
	return New(&apphttp.App{
		Config:  cfg,
		Logger:  logger.Discard(),
		Metrics: met,
		Modules: []apphttp.Module{health.NewModule(oneOperator{})},
	})
}

func TestRouterServesHealthAndMetrics(t *testing.T) {
	engine := newTestApp(&config.Config{CORSOrigins: []string{"*"}, WebhookRateLimit: 10, WebhookRateBurst: 10})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(httpkit.RequestIDHeader))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `receptionist_webhook_events_total{type="assistant-request"} 1`)
}

func TestCORSConfig(t *testing.T) {
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)
	assert.True(t, corsConfig(nil).AllowAllOrigins)

	cfg := corsConfig([]string{"https://dash.example.com"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://dash.example.com"}, cfg.AllowOrigins)
}
