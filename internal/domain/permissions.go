package domain

// Actor is the authenticated identity performing an operation,
// as resolved by the auth boundary.
type Actor struct {
	ID   int64
	Role Role
}

// IsAdmin reports whether the actor holds the admin capability
func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// Capability names a permissioned operation on a resource
type Capability string

const (
	CapViewReservation    Capability = "reservation:view"
	CapEditReservation    Capability = "reservation:edit"
	CapDeleteReservation  Capability = "reservation:delete"
	CapManageAvailability Capability = "availability:manage"
	CapCreateRating       Capability = "rating:create"
)

// Allowed decides whether actor may exercise cap on a resource owned by
// ownerIDs. Admins may do anything; everyone else must be among the owners.
// Per-role field restrictions (what a student or tutor may change on a
// reservation) are enforced by the use cases on top of this check.
func Allowed(actor Actor, ownerIDs []int64, cap Capability) bool {
	if actor.IsAdmin() {
		return true
	}
	for _, id := range ownerIDs {
		if id == actor.ID {
			return true
		}
	}
	return false
}
