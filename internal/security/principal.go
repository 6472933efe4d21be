package security

import (
	"clinic-booking-server/internal/models"
)

// Principal is the authenticated identity of a request.
type Principal struct {
	AccountID uint
	Role      models.Role
}

// HasRole reports whether the principal holds one of roles.
func (p Principal) HasRole(roles ...models.Role) bool {
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}
