package repositories

import (
	"errors"

	"itijobs_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRegistrationRequestNotFound = errors.New("employer registration request not found")

type EmployerRegistrationRepository interface {
	Create(db *gorm.DB, request *models.EmployerRegistrationRequest) error
	FindFirstByUserID(db *gorm.DB, userID string) (*models.EmployerRegistrationRequest, error)
	Delete(db *gorm.DB, requestID string) error
}

type EmployerRegistrationRepositoryImpl struct{}

func NewEmployerRegistrationRepository() EmployerRegistrationRepository {
	return &EmployerRegistrationRepositoryImpl{}
}

func (r *EmployerRegistrationRepositoryImpl) Create(db *gorm.DB, request *models.EmployerRegistrationRequest) error {
	if request.Status == "" {
		request.Status = models.RegistrationStatusPending
	}
	return db.Create(request).Error
}

// FindFirstByUserID returns the oldest request of the user. user_id is not
// unique, duplicates beyond the first are left alone.
func (r *EmployerRegistrationRepositoryImpl) FindFirstByUserID(db *gorm.DB, userID string) (*models.EmployerRegistrationRequest, error) {
	var request models.EmployerRegistrationRequest
	err := db.Where("user_id = ?", userID).Order("created_at ASC").First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *EmployerRegistrationRepositoryImpl) Delete(db *gorm.DB, requestID string) error {
	result := db.Where("id = ?", requestID).Delete(&models.EmployerRegistrationRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationRequestNotFound
	}
	return nil
}
