package authz_test

import (
	"testing"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/authz"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func principalWithRoles(isSuperAdmin bool, roles ...domain.Role) authz.Principal {
	return authz.Principal{
		User:  domain.User{UserID: "user-1", IsSuperAdmin: isSuperAdmin},
		Roles: roles,
	}
}

func TestAllowed_SuperAdminBypass(t *testing.T) {
	p := principalWithRoles(true) // zero roles

	for _, group := range domain.PermissionCatalog {
		for _, perm := range group.Permissions {
			assert.True(t, authz.Allowed(p, perm), "super admin should be allowed %s", perm)
		}
	}

	// Even tokens outside the catalog are allowed under the bypass.
	assert.True(t, authz.Allowed(p, domain.Permission("manage:nonexistent")))
}

func TestAllowed_UnionAcrossRoles(t *testing.T) {
	finance := domain.Role{RoleID: "r1", Name: "Finance", Permissions: []domain.Permission{domain.ManageFinance}}
	project := domain.Role{RoleID: "r2", Name: "Project Lead", Permissions: []domain.Permission{domain.ManageProject}}

	p := principalWithRoles(false, finance, project)

	assert.True(t, authz.Allowed(p, domain.ManageFinance))
	assert.True(t, authz.Allowed(p, domain.ManageProject))
	assert.False(t, authz.Allowed(p, domain.ManageIAM))
}

func TestAllowed_EmptyRolesDeniesEverything(t *testing.T) {
	p := principalWithRoles(false)

	for _, group := range domain.PermissionCatalog {
		for _, perm := range group.Permissions {
			assert.False(t, authz.Allowed(p, perm), "expected deny for %s", perm)
		}
	}
}

func TestAllowed_UnknownTokenDenies(t *testing.T) {
	role := domain.Role{RoleID: "r1", Name: "Everything", Permissions: domain.AllPermissions()}
	p := principalWithRoles(false, role)

	// A mistyped token never matches even against a role holding the full catalog.
	assert.False(t, authz.Allowed(p, domain.Permission("manage:fincance")))
}

func TestAllowed_DuplicateRolesAreHarmless(t *testing.T) {
	finance := domain.Role{RoleID: "r1", Name: "Finance", Permissions: []domain.Permission{domain.ManageFinance}}
	p := principalWithRoles(false, finance, finance, finance)

	assert.True(t, authz.Allowed(p, domain.ManageFinance))
	assert.False(t, authz.Allowed(p, domain.ManageEmployee))
}

func TestPermissionSet_Union(t *testing.T) {
	r1 := domain.Role{RoleID: "r1", Permissions: []domain.Permission{domain.ManageFinance, domain.ManageProject}}
	r2 := domain.Role{RoleID: "r2", Permissions: []domain.Permission{domain.ManageProject, domain.ManageIAM}}

	set := authz.PermissionSet([]domain.Role{r1, r2})

	assert.Len(t, set, 3)
	assert.Contains(t, set, domain.ManageFinance)
	assert.Contains(t, set, domain.ManageProject)
	assert.Contains(t, set, domain.ManageIAM)
	assert.NotContains(t, set, domain.ManageEmployee)
}

func TestIsKnownPermission(t *testing.T) {
	assert.True(t, domain.IsKnownPermission(domain.ManageOrganization))
	assert.False(t, domain.IsKnownPermission(domain.Permission("manage:unknown")))
}
