package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itijobs_backend/internal/config"
	"itijobs_backend/internal/email"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "app-test-secret"
	cfg.JWT.TTL = 5
	cfg.Metrics.Enabled = true
	return cfg
}

// Маршруты, которые не доходят до БД, проверяем без Postgres
func TestSetupRouter_PublicAndProtectedRoutes(t *testing.T) {
	router := SetupRouter(testConfig(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "itijobs_admin_http_requests_total")
}

func TestSetupRouter_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false
	router := SetupRouter(cfg, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMockEmailProvider_RendersTemplate(t *testing.T) {
	templates, err := email.NewDefaultTemplateManager("")
	require.NoError(t, err)

	mock := &MockEmailProvider{renderer: templates}
	msg := &email.Email{To: []string{"hr@acme.com"}}
	err = mock.SendWithTemplate(email.TemplateRegistrationReviewed, email.TemplateData{"Name": "Acme", "Approved": true}, msg)
	require.NoError(t, err)
	assert.Contains(t, msg.HTMLBody, "Acme")
}
