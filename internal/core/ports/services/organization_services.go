package services

import (
	"context"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	"github.com/dayatwork/sismo-v2-sub002/internal/dto"
)

// OrganizationReaderSvc defines read operations for organization data
type OrganizationReaderSvc interface {
	// GetOrganizationByID retrieves an organization by its ID.
	GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListUserOrganizations retrieves the organizations a user belongs to.
	ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error)

	// ListMembers retrieves the members of an organization.
	ListMembers(ctx context.Context, organizationID string, userID string) ([]domain.OrganizationMember, error)
}

// OrganizationWriterSvc defines write operations for organization data
type OrganizationWriterSvc interface {
	// CreateOrganization creates an organization, seeds its admin role with
	// the full permission catalog, and assigns it to the creator.
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error)

	// UpdateOrganization updates an organization's details.
	UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, updaterUserID string) (*domain.Organization, error)

	// AddMember adds a user to the organization.
	AddMember(ctx context.Context, organizationID string, targetUserID string, addingUserID string) error

	// RemoveMember removes a user from the organization.
	RemoveMember(ctx context.Context, organizationID string, targetUserID string, removingUserID string) error
}

// OrganizationSvcFacade combines all organization-related service interfaces
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
}
