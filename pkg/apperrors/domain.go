package apperrors

import (
	"net/http"
)

// --- Users & employers ---

// ErrInsufficientPermissions - не-админ пытается выполнить админ-действие.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Unauthorized",
	http.StatusForbidden,
)

// ErrUserNotFound - целевой пользователь не существует.
var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// ErrNotAnEmployer - approve/reject вызван для пользователя другой роли.
var ErrNotAnEmployer = New(
	CodeInvalidOperation,
	"user",
	"User is not an employer",
	http.StatusBadRequest,
)

// ErrLastAdmin - попытка удалить единственного администратора.
var ErrLastAdmin = New(
	CodeInvalidOperation,
	"user",
	"Cannot delete the last admin user",
	http.StatusBadRequest,
)

// ErrInvalidToken - неверный или просроченный токен.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)
