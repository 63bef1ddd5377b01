package models

import "gorm.io/datatypes"

// Profile is implemented by the role specific profiles. A user without a
// profile (admins, or accounts that never filled one in) has a nil Profile.
type Profile interface {
	Picture() *string
	isProfile()
}

type ItianProfile struct {
	BaseModel
	UserID         string `gorm:"type:uuid;uniqueIndex;not null"`
	ProfilePicture *string
	Bio            string
	Track          string
	Skills         datatypes.JSON `gorm:"type:jsonb"` // ["go", "react"]
}

func (p *ItianProfile) Picture() *string { return p.ProfilePicture }
func (p *ItianProfile) isProfile()       {}

type EmployerProfile struct {
	BaseModel
	UserID         string `gorm:"type:uuid;uniqueIndex;not null"`
	CompanyName    string `gorm:"not null"`
	ProfilePicture *string
	Website        string
	Location       string
}

func (p *EmployerProfile) Picture() *string { return p.ProfilePicture }
func (p *EmployerProfile) isProfile()       {}
