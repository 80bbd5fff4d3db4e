package models

// Setting represents an organization-scoped settings row.
type Setting struct {
	OrganizationID string `db:"organization_id"`
	Key            string `db:"key"`
	Value          string `db:"value"`
	AuditFields
}
