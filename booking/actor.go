package booking

import (
	"github.com/pawprintlabs/petcare-portal/models"
)

// ActingUser is the authenticated identity passed into every core operation.
// It is resolved once by the auth middleware; operations never re-query roles.
type ActingUser struct {
	ID   uint
	Role models.Role
}

func (u ActingUser) IsVet() bool {
	return u.Role == models.RoleVet
}

func (u ActingUser) IsAdmin() bool {
	return u.Role == models.RoleAdmin
}
