package models

type UserRole string
type RegistrationStatus string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleEmployer UserRole = "employer"
	UserRoleItian    UserRole = "itian"

	RegistrationStatusPending  RegistrationStatus = "Pending"
	RegistrationStatusApproved RegistrationStatus = "Approved"
	RegistrationStatusRejected RegistrationStatus = "Rejected"
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleEmployer, UserRoleItian:
		return true
	default:
		return false
	}
}
