package models

import "time"

// Role represents a role row. Permissions are stored as a text[] column and
// scanned into a string slice.
type Role struct {
	RoleID         string   `db:"role_id"`
	OrganizationID string   `db:"organization_id"`
	Name           string   `db:"name"`
	Description    string   `db:"description"`
	Permissions    []string `db:"permissions"`
	AuditFields
}

// UserRole represents a role assignment row.
type UserRole struct {
	UserID     string    `db:"user_id"`
	RoleID     string    `db:"role_id"`
	AssignedAt time.Time `db:"assigned_at"`
	AssignedBy string    `db:"assigned_by"`
}
