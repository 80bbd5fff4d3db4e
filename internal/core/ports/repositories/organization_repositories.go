package repositories

import (
	"context"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves an organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListOrganizationsByUserID retrieves the organizations a user belongs to.
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error)

	// FindMembership retrieves the membership record of a user in an
	// organization, or apperrors.ErrNotFound when the user is not a member.
	FindMembership(ctx context.Context, organizationID string, userID string) (*domain.OrganizationMember, error)

	// ListMembers retrieves the members of an organization.
	ListMembers(ctx context.Context, organizationID string) ([]domain.OrganizationMember, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// SaveOrganization persists a new organization.
	SaveOrganization(ctx context.Context, organization domain.Organization) error

	// UpdateOrganization updates an existing organization's details.
	UpdateOrganization(ctx context.Context, organization domain.Organization) error

	// AddMember records a user's membership in an organization.
	AddMember(ctx context.Context, membership domain.OrganizationMember) error

	// RemoveMember deletes a membership together with the user's role
	// assignments in the organization.
	RemoveMember(ctx context.Context, organizationID string, userID string) error
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
