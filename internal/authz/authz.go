// Package authz holds the authorization predicate shared by every module
// that gates access on ownership or role. No module reimplements these
// checks locally.
package authz

// Role is the system-wide user role.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Actor is the authenticated identity performing an operation, recovered
// from the bearer credential before any service is invoked.
type Actor struct {
	ID    string
	Email string
	Role  Role
}

// CanAccess reports whether the actor may read or mutate a record owned by
// ownerID: admins always, everyone else only their own records.
func CanAccess(actor Actor, ownerID string) bool {
	return actor.Role == RoleAdmin || actor.ID == ownerID
}

// CanAdminister reports whether the actor may perform admin-only
// operations such as catalog mutation.
func CanAdminister(actor Actor) bool {
	return actor.Role == RoleAdmin
}
