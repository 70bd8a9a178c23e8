package entity

import "time"

// Role governs what a member may do inside one company. A user holds exactly
// one role per company.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// CanInviteUsers reports whether the role may create, cancel or resend
// invitations.
func (r Role) CanInviteUsers() bool {
	return r == RoleOwner || r == RoleAdmin
}

// CanManageSettings reports whether the role may change workspace settings.
func (r Role) CanManageSettings() bool {
	return r == RoleOwner || r == RoleAdmin
}

// CanAccessResources reports whether the role may read and write the
// company's clients, projects and files. Every valid role can.
func (r Role) CanAccessResources() bool {
	return r.Valid()
}

// Membership is the user-to-company edge. The composite unique index
// guarantees at most one edge, and therefore one role, per pair.
type Membership struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex:idx_memberships_user_company;not null"`
	CompanyID uint   `gorm:"uniqueIndex:idx_memberships_user_company;not null"`
	Role      Role   `gorm:"size:16;not null"`
	CreatedAt time.Time
}
