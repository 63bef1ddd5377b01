package services

import (
	"itijobs_backend/internal/metrics"
	"itijobs_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	UserManagementService UserManagementService
}

// NewServiceContainer собирает сервисы поверх репозиториев
func NewServiceContainer(notifier Notifier, m *metrics.Metrics) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	registrationRepo := repositories.NewEmployerRegistrationRepository()

	return &ServiceContainer{
		UserManagementService: NewUserManagementService(userRepo, registrationRepo, notifier, m),
	}
}
