package booking

import "github.com/google/uuid"

// Role of the caller, resolved by the external authentication layer
// and treated as opaque input here.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleCoach      Role = "coach"
	RolePlayer     Role = "joueur"
	RoleSubscriber Role = "abonne"
)

// Identity is the resolved caller: who they are and what role they
// carry. A zero UserID means an anonymous caller.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

func (i Identity) IsAnonymous() bool { return i.UserID == uuid.Nil }

// CanManage reports whether the caller may mutate a reservation owned
// by owner: admins always, otherwise only the owner themselves.
// Anonymous reservations (owner == nil) are admin-managed only.
func (i Identity) CanManage(owner *uuid.UUID) bool {
	if i.IsAdmin() {
		return true
	}
	if owner == nil || i.IsAnonymous() {
		return false
	}
	return *owner == i.UserID
}
