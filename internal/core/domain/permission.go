package domain

// Permission is an opaque capability token drawn from a fixed catalog known at
// build time. Using typed constants rather than free strings means a typo'd
// token at a call site fails to compile instead of silently always-denying.
type Permission string

const (
	ManageOrganization Permission = "manage:organization"
	ManageDepartment   Permission = "manage:department"
	ManageEmployee     Permission = "manage:employee"
	ManageProject      Permission = "manage:project"
	ManageTracker      Permission = "manage:tracker"
	ManageFinance      Permission = "manage:finance"
	ManagePayroll      Permission = "manage:payroll"
	ManageMeeting      Permission = "manage:meeting"
	ManageIAM          Permission = "manage:iam"
	ManageSetting      Permission = "manage:setting"
)

// PermissionGroup clusters permissions for display purposes only.
// Grouping has no effect on evaluation.
type PermissionGroup struct {
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// PermissionCatalog is the full closed catalog, grouped for presentation.
var PermissionCatalog = []PermissionGroup{
	{Name: "Organization", Permissions: []Permission{ManageOrganization, ManageDepartment}},
	{Name: "HR", Permissions: []Permission{ManageEmployee, ManagePayroll}},
	{Name: "Project", Permissions: []Permission{ManageProject, ManageTracker}},
	{Name: "Finance", Permissions: []Permission{ManageFinance}},
	{Name: "Collaboration", Permissions: []Permission{ManageMeeting}},
	{Name: "Administration", Permissions: []Permission{ManageIAM, ManageSetting}},
}

// AllPermissions flattens the catalog. Mainly used when seeding the initial
// admin role of a new organization.
func AllPermissions() []Permission {
	var all []Permission
	for _, group := range PermissionCatalog {
		all = append(all, group.Permissions...)
	}
	return all
}

// IsKnownPermission reports whether the token is part of the static catalog.
// The evaluator never calls this; it exists for administrative validation when
// role definitions are created or updated.
func IsKnownPermission(p Permission) bool {
	for _, group := range PermissionCatalog {
		for _, perm := range group.Permissions {
			if perm == p {
				return true
			}
		}
	}
	return false
}
