package middleware

import (
	"strings"

	"itijobs_backend/internal/auth"
	"itijobs_backend/internal/logger"
	"itijobs_backend/pkg/apperrors"
	"itijobs_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware проверяет Bearer JWT и кладет auth.Caller в контекст.
// Роль здесь не проверяется, это делает сервис.
func AuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Rejected token", "error", err.Error(), "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		caller := auth.CallerFromClaims(claims)
		c.Set(string(contextkeys.CallerContextKey), caller)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), caller.ID))
		c.Next()
	}
}

// GetCaller извлекает вызывающего пользователя из контекста
func GetCaller(c *gin.Context) (auth.Caller, bool) {
	val, exists := c.Get(string(contextkeys.CallerContextKey))
	if !exists {
		return auth.Caller{}, false
	}
	caller, ok := val.(auth.Caller)
	return caller, ok
}
