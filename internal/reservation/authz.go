package reservation

// AdminRole is the role value granting access to any reservation.
const AdminRole = "admin"

// Actor is the requesting identity as resolved from the session token.
type Actor struct {
	UserID uint   // Authenticated user id
	Name   string // Display name, denormalized onto created reservations
	Role   string // Role: user or admin
}

// Decision is the tagged outcome of an authorization check.
type Decision int

const (
	Allow              Decision = iota // Action is permitted
	ForbiddenRole                      // Actor lacks the required role
	ForbiddenOwnership                 // Actor is not the owner of the resource
)

// Authorize decides whether actor may act on a reservation owned by
// ownerID. Admins may act on any reservation; everyone else only on
// their own.
func Authorize(actor Actor, ownerID uint) Decision {
	if actor.Role == AdminRole {
		return Allow
	}
	if actor.UserID == ownerID {
		return Allow
	}
	return ForbiddenOwnership
}

// RequireAdmin decides whether actor holds the admin role.
func RequireAdmin(actor Actor) Decision {
	if actor.Role == AdminRole {
		return Allow
	}
	return ForbiddenRole
}
