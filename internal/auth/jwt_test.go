package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itijobs_backend/internal/models"
)

const testUserID = "3f6d1c2a-9b4e-4c1d-8a7f-2e5b6c7d8e90"

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 5)

	token, err := svc.GenerateToken(testUserID, "admin@iti.gov.eg", "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, "admin@iti.gov.eg", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, tokenIssuer, claims.Issuer)

	caller := CallerFromClaims(claims)
	assert.True(t, caller.IsAdmin())
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("other", 5).GenerateToken(testUserID, "a@b.c", "admin")
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", 5).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", 5)
	claims := &Claims{
		UserID: testUserID,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{UserID: testUserID, Role: "admin"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", 5).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsMissingUserID(t *testing.T) {
	svc := NewJWTService("test-secret", 5)
	token, err := svc.GenerateToken("", "a@b.c", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCaller_IsAdmin(t *testing.T) {
	assert.False(t, Caller{ID: "x", Role: models.UserRoleEmployer}.IsAdmin())
	assert.False(t, Caller{Role: models.UserRoleAdmin}.IsAdmin())
	assert.True(t, Caller{ID: "x", Role: models.UserRoleAdmin}.IsAdmin())
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc := NewJWTService("", 5)

	_, err := svc.GenerateToken(testUserID, "a@b.c", "admin")
	assert.ErrorIs(t, err, ErrEmptySecret)

	// токен, подписанный пустым ключом, не принимается
	claims := &Claims{UserID: testUserID, Role: "admin"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(""))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsMalformedClaims(t *testing.T) {
	svc := NewJWTService("test-secret", 5)

	cases := map[string]struct {
		userID string
		role   string
	}{
		"non-uuid user_id": {"not-a-uuid", "admin"},
		"sql in user_id":   {"1' OR '1'='1", "admin"},
		"unknown role":     {testUserID, "superuser"},
		"empty role":       {testUserID, ""},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			token, err := svc.GenerateToken(tc.userID, "a@b.c", tc.role)
			require.NoError(t, err)

			_, err = svc.ValidateToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
