// Package authz decides whether a user may perform an action requiring a
// given permission. It is a pure allow-list union over the user's roles with
// a super-admin bypass: no precedence, no deny-override, no I/O. Resolving
// who the current user is (session, token) happens before this package is
// ever invoked.
package authz

import (
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
)

// Principal is a user together with their resolved roles. Role order is
// irrelevant and duplicates are harmless; only set membership matters.
type Principal struct {
	User  domain.User
	Roles []domain.Role
}

// Allowed reports whether the principal may perform an action requiring the
// given permission. Super admins are allowed unconditionally, even with zero
// roles. A token absent from every role denies; an unknown or mistyped token
// is simply never present and therefore denies as well.
func Allowed(p Principal, required domain.Permission) bool {
	if p.User.IsSuperAdmin {
		return true
	}
	for _, role := range p.Roles {
		if role.HasPermission(required) {
			return true
		}
	}
	return false
}

// PermissionSet returns the union of permissions across the given roles.
// Used by callers that render a principal's capability list.
func PermissionSet(roles []domain.Role) map[domain.Permission]struct{} {
	set := make(map[domain.Permission]struct{})
	for _, role := range roles {
		for _, perm := range role.Permissions {
			set[perm] = struct{}{}
		}
	}
	return set
}
