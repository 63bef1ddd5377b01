package email

import (
	"context"
	"fmt"

	"itijobs_backend/internal/logger"
	"itijobs_backend/internal/models"
)

const (
	TemplateRegistrationReviewed = "employer_registration_reviewed"
	registrationReviewedSubject  = "Your ITI Jobs employer registration"
)

// RegistrationMailer сообщает работодателю о решении по его заявке
type RegistrationMailer struct {
	provider Provider
}

func NewRegistrationMailer(provider Provider) *RegistrationMailer {
	return &RegistrationMailer{provider: provider}
}

// NotifyRegistrationReviewed ожидает заявку с подгруженным User
func (m *RegistrationMailer) NotifyRegistrationReviewed(ctx context.Context, req *models.EmployerRegistrationRequest) error {
	if req == nil || req.User == nil {
		return fmt.Errorf("registration request has no user attached")
	}
	if req.User.Email == "" {
		return fmt.Errorf("user %s has no email", req.User.ID)
	}

	data := TemplateData{
		"Name":     req.User.Name,
		"Status":   string(req.Status),
		"Approved": req.Status == models.RegistrationStatusApproved,
	}
	msg := &Email{
		To:      []string{req.User.Email},
		Subject: registrationReviewedSubject,
	}

	if err := m.provider.SendWithTemplate(TemplateRegistrationReviewed, data, msg); err != nil {
		return fmt.Errorf("send registration reviewed email: %w", err)
	}

	logger.CtxInfo(ctx, "Registration review email sent",
		"user_id", req.User.ID, "status", req.Status)
	return nil
}
