package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	UserManagementHandler *UserManagementHandler
	HealthHandler         *HealthHandler
}
