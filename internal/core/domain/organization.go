package domain

import "time"

// Organization represents an isolated tenant containing members, roles,
// accounts, journal entries, trackers and settings.
type Organization struct {
	OrganizationID      string  `json:"organizationID"` // Primary Key (e.g., UUID)
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode"` // e.g. "IDR", nullable
	IsActive            bool    `json:"isActive"`
	AuditFields
}

// OrganizationMember represents the membership of a User in an Organization.
// The member's capabilities come from the roles assigned to them, not from the
// membership record itself.
type OrganizationMember struct {
	UserID         string    `json:"userID"`
	UserName       string    `json:"userName"`
	OrganizationID string    `json:"organizationID"`
	JoinedAt       time.Time `json:"joinedAt"`
}
