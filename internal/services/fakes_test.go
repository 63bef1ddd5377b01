package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"itijobs_backend/internal/models"
	"itijobs_backend/internal/repositories"

	"gorm.io/gorm"
)

// fakeUserRepo - in-memory UserRepository. db игнорируется.
type fakeUserRepo struct {
	users   map[string]*models.User
	failAll error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	if _, ok := r.users[user.ID]; ok {
		return repositories.ErrUserAlreadyExists
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Activate(_ *gorm.DB, userID string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsActive = true
	return nil
}

func (r *fakeUserRepo) Delete(_ *gorm.DB, userID string) error {
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) CountByRole(_ *gorm.DB, role models.UserRole) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) FindAllLatest(_ *gorm.DB) ([]models.User, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	return r.sorted(func(*models.User) bool { return true }), nil
}

func (r *fakeUserRepo) FindInactiveByRole(_ *gorm.DB, role models.UserRole) ([]models.User, error) {
	return r.sorted(func(u *models.User) bool { return u.Role == role && !u.IsActive }), nil
}

func (r *fakeUserRepo) sorted(keep func(*models.User) bool) []models.User {
	out := []models.User{}
	for _, u := range r.users {
		if keep(u) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type fakeRegistrationRepo struct {
	requests []*models.EmployerRegistrationRequest
}

func (r *fakeRegistrationRepo) Create(_ *gorm.DB, req *models.EmployerRegistrationRequest) error {
	if req.Status == "" {
		req.Status = models.RegistrationStatusPending
	}
	r.requests = append(r.requests, req)
	return nil
}

func (r *fakeRegistrationRepo) FindFirstByUserID(_ *gorm.DB, userID string) (*models.EmployerRegistrationRequest, error) {
	var first *models.EmployerRegistrationRequest
	for _, req := range r.requests {
		if req.UserID != userID {
			continue
		}
		if first == nil || req.CreatedAt.Before(first.CreatedAt) {
			first = req
		}
	}
	if first == nil {
		return nil, repositories.ErrRegistrationRequestNotFound
	}
	cp := *first
	return &cp, nil
}

func (r *fakeRegistrationRepo) Delete(_ *gorm.DB, requestID string) error {
	for i, req := range r.requests {
		if req.ID == requestID {
			r.requests = append(r.requests[:i], r.requests[i+1:]...)
			return nil
		}
	}
	return repositories.ErrRegistrationRequestNotFound
}

func (r *fakeRegistrationRepo) byUser(userID string) []*models.EmployerRegistrationRequest {
	var out []*models.EmployerRegistrationRequest
	for _, req := range r.requests {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out
}

type sentNotification struct {
	email  string
	status models.RegistrationStatus
}

type fakeNotifier struct {
	attempts int
	sent     []sentNotification
	err      error
}

func (n *fakeNotifier) NotifyRegistrationReviewed(_ context.Context, req *models.EmployerRegistrationRequest) error {
	n.attempts++
	if req.User == nil {
		return errors.New("user not attached")
	}
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentNotification{email: req.User.Email, status: req.Status})
	return nil
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newUser(id, name string, role models.UserRole, active bool, age time.Duration) *models.User {
	u := &models.User{
		Name:     name,
		Email:    name + "@example.com",
		Role:     role,
		IsActive: active,
	}
	u.ID = id
	u.CreatedAt = baseTime.Add(-age)
	return u
}

func newRequest(id, userID string, age time.Duration) *models.EmployerRegistrationRequest {
	req := &models.EmployerRegistrationRequest{
		UserID: userID,
		Status: models.RegistrationStatusPending,
	}
	req.ID = id
	req.CreatedAt = baseTime.Add(-age)
	return req
}
