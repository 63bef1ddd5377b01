package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"itijobs_backend/database"
	"itijobs_backend/internal/auth"
	"itijobs_backend/internal/models"
	"itijobs_backend/pkg/contextkeys"
)

// testServer гоняет запросы через роутер внутри транзакции, которая
// откатывается после теста. Требует TEST_DATABASE_URL.
type testServer struct {
	router http.Handler
	tx     *gorm.DB
	jwt    *auth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set, skipping Postgres integration test")
	}

	db, err := database.Connect(dsn, false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	tx := db.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() { tx.Rollback() })

	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	return &testServer{
		router: SetupRouter(cfg, db),
		tx:     tx,
		jwt:    auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL),
	}
}

func (ts *testServer) createUser(t *testing.T, name string, role models.UserRole, active bool) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        name + "@itijobs.test",
		PasswordHash: "$2a$10$integrationtestplaceholderhashvalue",
		Role:         role,
		IsActive:     active,
	}
	require.NoError(t, ts.tx.Create(user).Error)
	return user
}

func (ts *testServer) token(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := ts.jwt.GenerateToken(u.ID, u.Email, string(u.Role))
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req = req.WithContext(context.WithValue(req.Context(), contextkeys.DBContextKey, ts.tx))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) exists(t *testing.T, id string) bool {
	t.Helper()
	var n int64
	require.NoError(t, ts.tx.Model(&models.User{}).Where("id = ?", id).Count(&n).Error)
	return n == 1
}

func TestAdminAPI_Postgres(t *testing.T) {
	ts := newTestServer(t)

	admin := ts.createUser(t, "root", models.UserRoleAdmin, true)
	adminToken := ts.token(t, admin)

	t.Run("last admin cannot be deleted", func(t *testing.T) {
		w := ts.do(t, http.MethodDelete, "/api/v1/admin/users/"+admin.ID, adminToken)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "Cannot delete the last admin user")
		assert.True(t, ts.exists(t, admin.ID))
	})

	t.Run("approve employer consumes registration request", func(t *testing.T) {
		employer := ts.createUser(t, "acme", models.UserRoleEmployer, false)
		request := &models.EmployerRegistrationRequest{UserID: employer.ID}
		require.NoError(t, ts.tx.Create(request).Error)

		w := ts.do(t, http.MethodGet, "/api/v1/admin/employers/pending", adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), employer.ID)

		w = ts.do(t, http.MethodPost, "/api/v1/admin/employers/"+employer.ID+"/approve", adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"message":"Employer approved successfully"}`, w.Body.String())

		var reloaded models.User
		require.NoError(t, ts.tx.First(&reloaded, "id = ?", employer.ID).Error)
		assert.True(t, reloaded.IsActive)

		var left int64
		require.NoError(t, ts.tx.Model(&models.EmployerRegistrationRequest{}).Where("user_id = ?", employer.ID).Count(&left).Error)
		assert.Zero(t, left)
	})

	t.Run("reject employer deletes the account", func(t *testing.T) {
		employer := ts.createUser(t, "globex", models.UserRoleEmployer, false)
		require.NoError(t, ts.tx.Create(&models.EmployerRegistrationRequest{UserID: employer.ID}).Error)

		w := ts.do(t, http.MethodDelete, "/api/v1/admin/employers/"+employer.ID+"/reject", adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.False(t, ts.exists(t, employer.ID))

		w = ts.do(t, http.MethodGet, "/api/v1/admin/users", adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), employer.ID)
	})

	t.Run("list users newest first with profile pictures", func(t *testing.T) {
		itian := ts.createUser(t, "sara", models.UserRoleItian, true)
		pic := "https://cdn.itijobs.test/sara.png"
		require.NoError(t, ts.tx.Create(&models.ItianProfile{UserID: itian.ID, ProfilePicture: &pic}).Error)
		// created_at с запасом, чтобы порядок не зависел от точности часов
		require.NoError(t, ts.tx.Model(itian).Update("created_at", time.Now().Add(time.Hour)).Error)

		w := ts.do(t, http.MethodGet, "/api/v1/admin/users", adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		var users []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
		require.NotEmpty(t, users)
		assert.Equal(t, itian.ID, users[0]["id"])
		assert.Equal(t, pic, users[0]["profile_picture"])
	})

	t.Run("second admin can be deleted", func(t *testing.T) {
		other := ts.createUser(t, "deputy", models.UserRoleAdmin, true)

		w := ts.do(t, http.MethodDelete, "/api/v1/admin/users/"+other.ID, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.False(t, ts.exists(t, other.ID))
		assert.True(t, ts.exists(t, admin.ID))
	})

	t.Run("non-admin gets 403", func(t *testing.T) {
		itian := ts.createUser(t, "omar", models.UserRoleItian, true)
		w := ts.do(t, http.MethodGet, "/api/v1/admin/users", ts.token(t, itian))
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), `"message":"Unauthorized"`)
	})
}

func TestSeedFirstAdmin_Postgres(t *testing.T) {
	ts := newTestServer(t)

	cfg := testConfig()
	cfg.FirstAdminEmail = "first@itijobs.test"
	cfg.FirstAdminPassword = "initial-password"

	require.NoError(t, seedFirstAdmin(ts.tx, cfg))
	// повторный запуск ничего не создает
	require.NoError(t, seedFirstAdmin(ts.tx, cfg))

	var admins []models.User
	require.NoError(t, ts.tx.Where("email = ?", cfg.FirstAdminEmail).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, models.UserRoleAdmin, admins[0].Role)
	assert.True(t, admins[0].IsActive)
	assert.True(t, auth.CheckPasswordHash("initial-password", admins[0].PasswordHash))
}
