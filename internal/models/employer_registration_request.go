package models

// EmployerRegistrationRequest tracks an employer waiting for an admin
// decision. It is removed as soon as the decision has been made.
type EmployerRegistrationRequest struct {
	BaseModel
	UserID string             `gorm:"type:uuid;not null;index"`
	Status RegistrationStatus `gorm:"type:varchar(20);not null;default:'Pending'"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
