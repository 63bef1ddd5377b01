package services

import (
	"context"
	"errors"

	"itijobs_backend/internal/auth"
	"itijobs_backend/internal/logger"
	"itijobs_backend/internal/metrics"
	"itijobs_backend/internal/models"
	"itijobs_backend/internal/repositories"
	"itijobs_backend/internal/services/dto"
	"itijobs_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	MsgEmployerApproved = "Employer approved successfully"
	MsgEmployerRejected = "Employer rejected and deleted successfully"
	MsgUserDeleted      = "User deleted successfully"
)

// Notifier отправляет работодателю письмо о решении по заявке.
// Заявка приходит с выставленным статусом и подгруженным User.
type Notifier interface {
	NotifyRegistrationReviewed(ctx context.Context, req *models.EmployerRegistrationRequest) error
}

// UserManagementService - админские операции над пользователями.
// db должен быть привязан к контексту запроса (см. DBMiddleware).
type UserManagementService interface {
	ListAllUsers(ctx context.Context, db *gorm.DB, caller auth.Caller) ([]dto.UserResponse, error)
	ListUnapprovedEmployers(ctx context.Context, db *gorm.DB, caller auth.Caller) ([]dto.PendingEmployerResponse, error)
	ApproveEmployer(ctx context.Context, db *gorm.DB, caller auth.Caller, userID string) (*dto.MessageResponse, error)
	RejectEmployer(ctx context.Context, db *gorm.DB, caller auth.Caller, userID string) (*dto.MessageResponse, error)
	DeleteUser(ctx context.Context, db *gorm.DB, caller auth.Caller, userID string) (*dto.MessageResponse, error)
}

type UserManagementServiceImpl struct {
	userRepo         repositories.UserRepository
	registrationRepo repositories.EmployerRegistrationRepository
	notifier         Notifier
	metrics          *metrics.Metrics
}

func NewUserManagementService(
	userRepo repositories.UserRepository,
	registrationRepo repositories.EmployerRegistrationRepository,
	notifier Notifier,
	m *metrics.Metrics,
) UserManagementService {
	return &UserManagementServiceImpl{
		userRepo:         userRepo,
		registrationRepo: registrationRepo,
		notifier:         notifier,
		metrics:          m,
	}
}

func (s *UserManagementServiceImpl) ListAllUsers(ctx context.Context, db *gorm.DB, caller auth.Caller) ([]dto.UserResponse, error) {
	if err := s.requireAdmin(ctx, db, caller); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindAllLatest(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, dto.NewUserResponse(&users[i]))
	}
	return result, nil
}

func (s *UserManagementServiceImpl) ListUnapprovedEmployers(ctx context.Context, db *gorm.DB, caller auth.Caller) ([]dto.PendingEmployerResponse, error) {
	if err := s.requireAdmin(ctx, db, caller); err != nil {
		return nil, err
	}

	employers, err := s.userRepo.FindInactiveByRole(db, models.UserRoleEmployer)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.PendingEmployerResponse, 0, len(employers))
	for i := range employers {
		result = append(result, dto.NewPendingEmployerResponse(&employers[i]))
	}
	return result, nil
}

func (s *UserManagementServiceImpl) ApproveEmployer(ctx context.Context, db *gorm.DB, caller auth.Caller, userID string) (*dto.MessageResponse, error) {
	if err := s.requireAdmin(ctx, db, caller); err != nil {
		return nil, err
	}

	user, err := s.findEmployer(db, userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Activate(db, user.ID); err != nil {
		return nil, handleUserError(err)
	}
	user.IsActive = true

	if err := s.closeRegistrationRequest(ctx, db, user, models.RegistrationStatusApproved); err != nil {
		return nil, err
	}

	s.metrics.EmployerApproved()
	logger.CtxInfo(ctx, "Employer approved", "employer_id", user.ID)
	return &dto.MessageResponse{Message: MsgEmployerApproved}, nil
}

func (s *UserManagementServiceImpl) RejectEmployer(ctx context.Context, db *gorm.DB, caller auth.Caller, userID string) (*dto.MessageResponse, error) {
	if err := s.requireAdmin(ctx, db, caller); err != nil {
		return nil, err
	}

	user, err := s.findEmployer(db, userID)
	if err != nil {
		return nil, err
	}

	if err := s.closeRegistrationRequest(ctx, db, user, models.RegistrationStatusRejected); err != nil {
		return nil, err
	}

	if err := s.userRepo.Delete(db, user.ID); err != nil {
		return nil, handleUserError(err)
	}

	s.metrics.EmployerRejected()
	logger.CtxInfo(ctx, "Employer rejected and deleted", "employer_id", user.ID)
	return &dto.MessageResponse{Message: MsgEmployerRejected}, nil
}

func (s *UserManagementServiceImpl) DeleteUser(ctx context.Context, db *gorm.DB, caller auth.Caller, userID string) (*dto.MessageResponse, error) {
	if err := s.requireAdmin(ctx, db, caller); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}

	if user.IsAdmin() {
		admins, err := s.userRepo.CountByRole(db, models.UserRoleAdmin)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if admins <= 1 {
			logger.CtxWarn(ctx, "Refused to delete the last admin", "user_id", user.ID)
			return nil, apperrors.ErrLastAdmin
		}
	}

	if err := s.userRepo.Delete(db, user.ID); err != nil {
		return nil, handleUserError(err)
	}

	s.metrics.UserDeleted()
	logger.CtxInfo(ctx, "User deleted", "target_user_id", user.ID, "role", user.Role)
	return &dto.MessageResponse{Message: MsgUserDeleted}, nil
}

// requireAdmin проверяет роль из токена и перечитывает вызывающего из базы:
// удаленный или разжалованный админ со старым токеном не пройдет.
func (s *UserManagementServiceImpl) requireAdmin(ctx context.Context, db *gorm.DB, caller auth.Caller) error {
	if !caller.IsAdmin() {
		logger.CtxWarn(ctx, "Admin operation denied", "caller_id", caller.ID, "role", caller.Role)
		return apperrors.ErrInsufficientPermissions
	}

	current, err := s.userRepo.FindByID(db, caller.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxWarn(ctx, "Admin operation denied: caller no longer exists", "caller_id", caller.ID)
			return apperrors.ErrInsufficientPermissions
		}
		return apperrors.InternalError(err)
	}
	if !current.IsAdmin() {
		logger.CtxWarn(ctx, "Admin operation denied: caller lost admin role", "caller_id", caller.ID)
		return apperrors.ErrInsufficientPermissions
	}
	return nil
}

func (s *UserManagementServiceImpl) findEmployer(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	if !user.IsEmployer() {
		return nil, apperrors.ErrNotAnEmployer
	}
	return user, nil
}

// closeRegistrationRequest выставляет решение, отправляет письмо и удаляет заявку.
// Отсутствие заявки не ошибка. Ошибка отправки письма не отменяет решение.
func (s *UserManagementServiceImpl) closeRegistrationRequest(ctx context.Context, db *gorm.DB, user *models.User, status models.RegistrationStatus) error {
	request, err := s.registrationRepo.FindFirstByUserID(db, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationRequestNotFound) {
			logger.CtxInfo(ctx, "No registration request for employer", "employer_id", user.ID)
			return nil
		}
		return apperrors.InternalError(err)
	}

	request.Status = status
	request.User = user

	if s.notifier != nil {
		if err := s.notifier.NotifyRegistrationReviewed(ctx, request); err != nil {
			s.metrics.NotificationFailed()
			logger.CtxWithError(ctx, "Failed to notify employer about registration decision", err,
				"employer_id", user.ID, "status", status)
		}
	}

	if err := s.registrationRepo.Delete(db, request.ID); err != nil && !errors.Is(err, repositories.ErrRegistrationRequestNotFound) {
		return apperrors.InternalError(err)
	}
	return nil
}

func handleUserError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound.WithError(err)
	}
	return apperrors.InternalError(err)
}
