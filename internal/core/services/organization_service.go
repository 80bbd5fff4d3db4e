package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portsrepo "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/repositories"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/dto"
)

// administratorRoleName is the seeded role that owns the full permission
// catalog in a fresh organization.
const administratorRoleName = "Administrator"

// organizationService implements the OrganizationSvcFacade.
type organizationService struct {
	BaseService
	orgRepo  portsrepo.OrganizationRepositoryFacade
	roleRepo portsrepo.RoleRepositoryFacade
	userRepo portsrepo.UserReader
}

// NewOrganizationService creates a new organization service.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade, roleRepo portsrepo.RoleRepositoryFacade, userRepo portsrepo.UserReader, authorizer portssvc.AuthorizerSvc) portssvc.OrganizationSvcFacade {
	svc := &organizationService{
		orgRepo:  orgRepo,
		roleRepo: roleRepo,
		userRepo: userRepo,
	}
	svc.Authorizer = authorizer
	return svc
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// CreateOrganization creates an organization, seeds its Administrator role
// with the full permission catalog, and assigns it to the creator. Anyone may
// create an organization; they become its first administrator.
func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		IsActive:       true,
		AuditFields:    audit,
	}
	if req.DefaultCurrencyCode != "" {
		org.DefaultCurrencyCode = &req.DefaultCurrencyCode
	}

	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		s.LogError(ctx, err, "Failed to save organization", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	membership := domain.OrganizationMember{
		UserID:         creatorUserID,
		OrganizationID: org.OrganizationID,
		JoinedAt:       now,
	}
	if err := s.orgRepo.AddMember(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add creator as member of new organization",
			slog.String("organization_id", org.OrganizationID),
			slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to add creator to organization: %w", err)
	}

	adminRole := domain.Role{
		RoleID:         uuid.NewString(),
		OrganizationID: org.OrganizationID,
		Name:           administratorRoleName,
		Description:    "Full access to every module",
		Permissions:    domain.AllPermissions(),
		AuditFields:    audit,
	}
	if err := s.roleRepo.SaveRole(ctx, adminRole); err != nil {
		s.LogError(ctx, err, "Failed to seed administrator role",
			slog.String("organization_id", org.OrganizationID))
		return nil, fmt.Errorf("failed to seed administrator role: %w", err)
	}

	assignment := domain.UserRole{
		UserID:     creatorUserID,
		RoleID:     adminRole.RoleID,
		AssignedAt: now,
		AssignedBy: creatorUserID,
	}
	if err := s.roleRepo.AssignRoleToUser(ctx, assignment); err != nil {
		s.LogError(ctx, err, "Failed to assign administrator role to creator",
			slog.String("organization_id", org.OrganizationID),
			slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to assign administrator role: %w", err)
	}

	s.LogInfo(ctx, "Organization created successfully",
		slog.String("organization_id", org.OrganizationID),
		slog.String("creator_user_id", creatorUserID))
	return &org, nil
}

// GetOrganizationByID retrieves an organization by its ID.
func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find organization by ID", slog.String("organization_id", organizationID))
		}
		return nil, err
	}
	return org, nil
}

// ListUserOrganizations retrieves the organizations a user belongs to.
func (s *organizationService) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	orgs, err := s.orgRepo.ListOrganizationsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organizations for user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list organizations for user %s: %w", userID, err)
	}
	if orgs == nil {
		orgs = []domain.Organization{}
	}
	return orgs, nil
}

// ListMembers retrieves the members of an organization. Any member may see
// the roster; managing it requires ManageOrganization.
func (s *organizationService) ListMembers(ctx context.Context, organizationID string, userID string) ([]domain.OrganizationMember, error) {
	if _, err := s.orgRepo.FindMembership(ctx, organizationID, userID); err != nil {
		return nil, err
	}

	members, err := s.orgRepo.ListMembers(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list members", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	if members == nil {
		members = []domain.OrganizationMember{}
	}
	return members, nil
}

// UpdateOrganization updates an organization's details.
func (s *organizationService) UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, updaterUserID string) (*domain.Organization, error) {
	if err := s.AuthorizeUser(ctx, organizationID, updaterUserID, domain.ManageOrganization); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Description != nil {
		org.Description = *req.Description
	}
	if req.IsActive != nil {
		org.IsActive = *req.IsActive
	}
	org.LastUpdatedAt = time.Now()
	org.LastUpdatedBy = updaterUserID

	if err := s.orgRepo.UpdateOrganization(ctx, *org); err != nil {
		s.LogError(ctx, err, "Failed to update organization", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	s.LogInfo(ctx, "Organization updated successfully", slog.String("organization_id", organizationID))
	return org, nil
}

// AddMember adds a user to the organization.
func (s *organizationService) AddMember(ctx context.Context, organizationID string, targetUserID string, addingUserID string) error {
	if err := s.AuthorizeUser(ctx, organizationID, addingUserID, domain.ManageOrganization); err != nil {
		return err
	}

	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s not found", apperrors.ErrValidation, targetUserID)
		}
		return fmt.Errorf("failed to look up target user: %w", err)
	}

	membership := domain.OrganizationMember{
		UserID:         targetUserID,
		OrganizationID: organizationID,
		JoinedAt:       time.Now(),
	}
	if err := s.orgRepo.AddMember(ctx, membership); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Already a member; nothing to do.
			return nil
		}
		s.LogError(ctx, err, "Failed to add member",
			slog.String("organization_id", organizationID),
			slog.String("target_user_id", targetUserID))
		return fmt.Errorf("failed to add member: %w", err)
	}

	s.LogInfo(ctx, "Member added successfully",
		slog.String("organization_id", organizationID),
		slog.String("target_user_id", targetUserID),
		slog.String("added_by", addingUserID))
	return nil
}

// RemoveMember removes a user from the organization together with their role
// assignments.
func (s *organizationService) RemoveMember(ctx context.Context, organizationID string, targetUserID string, removingUserID string) error {
	if err := s.AuthorizeUser(ctx, organizationID, removingUserID, domain.ManageOrganization); err != nil {
		return err
	}

	if err := s.orgRepo.RemoveMember(ctx, organizationID, targetUserID); err != nil {
		s.LogError(ctx, err, "Failed to remove member",
			slog.String("organization_id", organizationID),
			slog.String("target_user_id", targetUserID))
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.LogInfo(ctx, "Member removed successfully",
		slog.String("organization_id", organizationID),
		slog.String("target_user_id", targetUserID))
	return nil
}
