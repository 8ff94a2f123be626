package models

import (
	id "turnero/pkg/domain"
)

// Role classifies what a user is allowed to do.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleTrainer    Role = "trainer"
	RoleMember     Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleTrainer, RoleMember:
		return true
	}
	return false
}

// CanLeadSessions reports whether the role may be assigned as the trainer of
// a training session.
func (r Role) CanLeadSessions() bool {
	return r == RoleTrainer || r == RoleSuperAdmin
}

// CanManageSchedule reports whether the role may create, update, cancel, or
// generate training sessions and slot configurations.
func (r Role) CanManageSchedule() bool {
	return r == RoleTrainer || r == RoleSuperAdmin
}

// User is the minimal projection of a club member this core needs.
// Account lifecycle and credentials live with the external identity service.
type User struct {
	ID       id.UserID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     Role      `json:"role"`
	Deleted  bool      `json:"-"`
}
