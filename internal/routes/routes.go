package routes

import (
	"itijobs_backend/internal/auth"
	"itijobs_backend/internal/handlers"
	"itijobs_backend/internal/logger"
	"itijobs_backend/internal/metrics"
	"itijobs_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

const AdminBasePath = "/api/v1/admin"

// RegisterRoutes регистрирует все HTTP маршруты.
// m == nil отключает /metrics.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	jwtService *auth.JWTService,
	m *metrics.Metrics,
) {
	ginRouter.GET("/health", appHandlers.HealthHandler.Health)

	if m != nil {
		ginRouter.GET("/metrics", gin.WrapH(m.Handler()))
		logger.Info("Prometheus metrics exposed on /metrics")
	}

	admin := ginRouter.Group(AdminBasePath)
	admin.Use(middleware.AuthMiddleware(jwtService))
	{
		appHandlers.UserManagementHandler.RegisterRoutes(admin)
	}
}
