package models

import (
	"database/sql"
	"time"
)

// Organization represents an organization row.
type Organization struct {
	OrganizationID      string         `db:"organization_id"`
	Name                string         `db:"name"`
	Description         string         `db:"description"`
	DefaultCurrencyCode sql.NullString `db:"default_currency_code"`
	IsActive            bool           `db:"is_active"`
	AuditFields
}

// OrganizationMember represents a membership row.
type OrganizationMember struct {
	UserID         string    `db:"user_id"`
	OrganizationID string    `db:"organization_id"`
	JoinedAt       time.Time `db:"joined_at"`
}
