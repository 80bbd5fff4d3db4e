package domain

import "time"

// Role is a named permission set owned by an organization. Membership in the
// set is what matters; order carries no meaning.
type Role struct {
	RoleID         string       `json:"roleID"`         // Primary Key (e.g., UUID)
	OrganizationID string       `json:"organizationID"` // FK -> organizations.organization_id
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Permissions    []Permission `json:"permissions"`
	AuditFields
}

// HasPermission reports whether the role's permission set contains the token.
func (r Role) HasPermission(p Permission) bool {
	for _, perm := range r.Permissions {
		if perm == p {
			return true
		}
	}
	return false
}

// UserRole assigns a role to a user within an organization.
type UserRole struct {
	UserID     string    `json:"userID"`     // FK -> users.user_id
	RoleID     string    `json:"roleID"`     // FK -> roles.role_id
	AssignedAt time.Time `json:"assignedAt"` // Timestamp of the assignment
	AssignedBy string    `json:"assignedBy"` // UserID Reference
}
