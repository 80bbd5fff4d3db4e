package dto

import (
	"time"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
)

// CreateOrganizationRequest defines the data required to create an organization.
type CreateOrganizationRequest struct {
	Name                string `json:"name" binding:"required,max=150"`
	Description         string `json:"description"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"omitempty,len=3"`
}

// UpdateOrganizationRequest defines the data allowed for updating an organization.
type UpdateOrganizationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// AddMemberRequest identifies the user joining an organization.
type AddMemberRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// OrganizationResponse is the public representation of an organization.
type OrganizationResponse struct {
	OrganizationID      string    `json:"organizationID"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	DefaultCurrencyCode *string   `json:"defaultCurrencyCode,omitempty"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ToOrganizationResponse converts a domain.Organization to its DTO.
func ToOrganizationResponse(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID:      org.OrganizationID,
		Name:                org.Name,
		Description:         org.Description,
		DefaultCurrencyCode: org.DefaultCurrencyCode,
		IsActive:            org.IsActive,
		CreatedAt:           org.CreatedAt,
	}
}

// MemberResponse is the public representation of a membership.
type MemberResponse struct {
	UserID   string    `json:"userID"`
	UserName string    `json:"userName"`
	JoinedAt time.Time `json:"joinedAt"`
}

// ToListMembersResponse converts memberships to DTOs.
func ToListMembersResponse(members []domain.OrganizationMember) []MemberResponse {
	responses := make([]MemberResponse, len(members))
	for i, m := range members {
		responses[i] = MemberResponse{
			UserID:   m.UserID,
			UserName: m.UserName,
			JoinedAt: m.JoinedAt,
		}
	}
	return responses
}
