package models

type User struct {
	BaseModel
	Name         string   `gorm:"not null"`
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;index"`
	IsActive     bool     `gorm:"default:false"`

	// Relations
	ItianProfile    *ItianProfile    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	EmployerProfile *EmployerProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Profile returns the profile variant that matches the user's role, or nil
// when the role has no profile concept or the profile was never created.
func (u *User) Profile() Profile {
	switch u.Role {
	case UserRoleItian:
		if u.ItianProfile != nil {
			return u.ItianProfile
		}
	case UserRoleEmployer:
		if u.EmployerProfile != nil {
			return u.EmployerProfile
		}
	}
	return nil
}

// ProfilePicture resolves the picture through Profile; nil for None.
func (u *User) ProfilePicture() *string {
	if p := u.Profile(); p != nil {
		return p.Picture()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

func (u *User) IsEmployer() bool {
	return u.Role == UserRoleEmployer
}
