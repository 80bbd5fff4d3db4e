package domain

// Setting is an organization-scoped configuration value. Reads go through a
// TTL cache; writes hit the database and invalidate the cached value.
type Setting struct {
	OrganizationID string `json:"organizationID"` // FK -> organizations.organization_id
	Key            string `json:"key"`
	Value          string `json:"value"`
	AuditFields
}
