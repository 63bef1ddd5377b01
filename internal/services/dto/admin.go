package dto

import "itijobs_backend/internal/models"

// UserResponse - строка списка пользователей в админке
type UserResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           models.UserRole `json:"role"`
	ProfilePicture *string         `json:"profile_picture"`
}

// PendingEmployerResponse - работодатель, ожидающий одобрения
type PendingEmployerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// UserIDParam - :id из пути
type UserIDParam struct {
	ID string `uri:"id" validate:"required,uuid"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		ProfilePicture: u.ProfilePicture(),
	}
}

func NewPendingEmployerResponse(u *models.User) PendingEmployerResponse {
	return PendingEmployerResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}
