package auth

import "itijobs_backend/internal/models"

// Caller - аутентифицированный пользователь запроса
type Caller struct {
	ID   string
	Role models.UserRole
}

func CallerFromClaims(claims *Claims) Caller {
	return Caller{ID: claims.UserID, Role: models.UserRole(claims.Role)}
}

func (c Caller) IsAdmin() bool {
	return c.ID != "" && c.Role == models.UserRoleAdmin
}
