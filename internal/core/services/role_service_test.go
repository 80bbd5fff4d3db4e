package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/dto"
)

type RoleServiceTestSuite struct {
	suite.Suite
	mockRoleRepo *MockRoleRepository
	mockUserRepo *MockUserRepository
	mockOrgRepo  *MockOrganizationRepository
	service      portssvc.RoleSvcFacade
	ctx          context.Context

	orgID      string
	adminUser  domain.User
	memberUser domain.User
	superAdmin domain.User
	adminRole  domain.Role
	viewerRole domain.Role
}

func (suite *RoleServiceTestSuite) SetupTest() {
	suite.mockRoleRepo = new(MockRoleRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.service = services.NewRoleService(suite.mockRoleRepo, suite.mockUserRepo, suite.mockOrgRepo)
	suite.ctx = context.Background()

	suite.orgID = "org-1"
	suite.adminUser = domain.User{UserID: "user-admin", Username: "admin"}
	suite.memberUser = domain.User{UserID: "user-member", Username: "member"}
	suite.superAdmin = domain.User{UserID: "user-root", Username: "root", IsSuperAdmin: true}
	suite.adminRole = domain.Role{
		RoleID:         "role-admin",
		OrganizationID: suite.orgID,
		Name:           "Administrator",
		Permissions:    domain.AllPermissions(),
	}
	suite.viewerRole = domain.Role{
		RoleID:         "role-viewer",
		OrganizationID: suite.orgID,
		Name:           "Viewer",
		Permissions:    []domain.Permission{domain.ManageTracker},
	}
}

func (suite *RoleServiceTestSuite) expectPrincipal(user domain.User, roles []domain.Role) {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, user.UserID).Return(&user, nil)
	if user.IsSuperAdmin {
		return
	}
	membership := &domain.OrganizationMember{OrganizationID: suite.orgID, UserID: user.UserID}
	suite.mockOrgRepo.On("FindMembership", suite.ctx, suite.orgID, user.UserID).Return(membership, nil)
	suite.mockRoleRepo.On("ListRolesByUser", suite.ctx, suite.orgID, user.UserID).Return(roles, nil)
}

func (suite *RoleServiceTestSuite) TestAuthorize_Granted() {
	suite.expectPrincipal(suite.adminUser, []domain.Role{suite.adminRole})

	err := suite.service.Authorize(suite.ctx, suite.orgID, suite.adminUser.UserID, domain.ManageIAM)

	suite.Require().NoError(err)
}

func (suite *RoleServiceTestSuite) TestAuthorize_Denied() {
	suite.expectPrincipal(suite.memberUser, []domain.Role{suite.viewerRole})

	err := suite.service.Authorize(suite.ctx, suite.orgID, suite.memberUser.UserID, domain.ManageIAM)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *RoleServiceTestSuite) TestAuthorize_SuperAdminBypassesMembership() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, suite.superAdmin.UserID).Return(&suite.superAdmin, nil)

	err := suite.service.Authorize(suite.ctx, suite.orgID, suite.superAdmin.UserID, domain.ManageIAM)

	suite.Require().NoError(err)
	suite.mockOrgRepo.AssertNotCalled(suite.T(), "FindMembership", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "ListRolesByUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RoleServiceTestSuite) TestAuthorize_NonMember() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, suite.memberUser.UserID).Return(&suite.memberUser, nil)
	suite.mockOrgRepo.On("FindMembership", suite.ctx, suite.orgID, suite.memberUser.UserID).Return(nil, errNotFound)

	err := suite.service.Authorize(suite.ctx, suite.orgID, suite.memberUser.UserID, domain.ManageFinance)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RoleServiceTestSuite) TestResolvePrincipal_LoadsRoles() {
	suite.expectPrincipal(suite.memberUser, []domain.Role{suite.viewerRole})

	principal, err := suite.service.ResolvePrincipal(suite.ctx, suite.orgID, suite.memberUser.UserID)

	suite.Require().NoError(err)
	suite.Equal(suite.memberUser.UserID, principal.User.UserID)
	suite.Require().Len(principal.Roles, 1)
	suite.Equal(suite.viewerRole.RoleID, principal.Roles[0].RoleID)
}

func (suite *RoleServiceTestSuite) TestListUserPermissions_UnionAcrossRoles() {
	finance := domain.Role{
		RoleID:         "role-finance",
		OrganizationID: suite.orgID,
		Permissions:    []domain.Permission{domain.ManageFinance, domain.ManageTracker},
	}
	suite.expectPrincipal(suite.memberUser, []domain.Role{suite.viewerRole, finance})

	permissions, err := suite.service.ListUserPermissions(suite.ctx, suite.orgID, suite.memberUser.UserID)

	suite.Require().NoError(err)
	// Duplicate ManageTracker collapses in the union.
	suite.ElementsMatch([]domain.Permission{domain.ManageFinance, domain.ManageTracker}, permissions)
}

func (suite *RoleServiceTestSuite) TestListUserPermissions_SuperAdminGetsAll() {
	suite.mockUserRepo.On("FindUserByID", suite.ctx, suite.superAdmin.UserID).Return(&suite.superAdmin, nil)

	permissions, err := suite.service.ListUserPermissions(suite.ctx, suite.orgID, suite.superAdmin.UserID)

	suite.Require().NoError(err)
	suite.ElementsMatch(domain.AllPermissions(), permissions)
}

func (suite *RoleServiceTestSuite) TestCreateRole_UnknownPermission() {
	suite.expectPrincipal(suite.adminUser, []domain.Role{suite.adminRole})
	req := dto.CreateRoleRequest{
		Name:        "Broken",
		Permissions: []domain.Permission{domain.Permission("manage:time-machine")},
	}

	role, err := suite.service.CreateRole(suite.ctx, suite.orgID, req, suite.adminUser.UserID)

	suite.Require().Error(err)
	suite.Nil(role)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "SaveRole", mock.Anything, mock.Anything)
}

func (suite *RoleServiceTestSuite) TestCreateRole_Success() {
	suite.expectPrincipal(suite.adminUser, []domain.Role{suite.adminRole})
	req := dto.CreateRoleRequest{
		Name:        "Bookkeeper",
		Description: "Finance only",
		Permissions: []domain.Permission{domain.ManageFinance},
	}
	suite.mockRoleRepo.On("SaveRole", suite.ctx, mock.AnythingOfType("domain.Role")).
		Run(func(args mock.Arguments) {
			role := args.Get(1).(domain.Role)
			suite.Equal(suite.orgID, role.OrganizationID)
			suite.Equal(req.Name, role.Name)
			suite.NotEmpty(role.RoleID)
		}).
		Return(nil).Once()

	role, err := suite.service.CreateRole(suite.ctx, suite.orgID, req, suite.adminUser.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(role)
	suite.mockRoleRepo.AssertExpectations(suite.T())
}

func (suite *RoleServiceTestSuite) TestGetRoleByID_WrongOrganization() {
	suite.expectPrincipal(suite.adminUser, []domain.Role{suite.adminRole})
	foreign := &domain.Role{RoleID: "role-x", OrganizationID: "other-org"}
	suite.mockRoleRepo.On("FindRoleByID", suite.ctx, "role-x").Return(foreign, nil).Once()

	role, err := suite.service.GetRoleByID(suite.ctx, suite.orgID, "role-x", suite.adminUser.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(role)
}

func (suite *RoleServiceTestSuite) TestAssignRole_TargetNotMember() {
	suite.expectPrincipal(suite.adminUser, []domain.Role{suite.adminRole})
	suite.mockRoleRepo.On("FindRoleByID", suite.ctx, suite.viewerRole.RoleID).Return(&suite.viewerRole, nil).Once()
	suite.mockOrgRepo.On("FindMembership", suite.ctx, suite.orgID, "outsider").Return(nil, errNotFound).Once()

	err := suite.service.AssignRole(suite.ctx, suite.orgID, suite.viewerRole.RoleID, "outsider", suite.adminUser.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "AssignRoleToUser", mock.Anything, mock.Anything)
}

func (suite *RoleServiceTestSuite) TestAssignRole_DuplicateIsNoOp() {
	suite.expectPrincipal(suite.adminUser, []domain.Role{suite.adminRole})
	suite.mockRoleRepo.On("FindRoleByID", suite.ctx, suite.viewerRole.RoleID).Return(&suite.viewerRole, nil).Once()
	membership := &domain.OrganizationMember{OrganizationID: suite.orgID, UserID: suite.memberUser.UserID}
	suite.mockOrgRepo.On("FindMembership", suite.ctx, suite.orgID, suite.memberUser.UserID).Return(membership, nil).Once()
	suite.mockRoleRepo.On("AssignRoleToUser", suite.ctx, mock.AnythingOfType("domain.UserRole")).
		Return(apperrors.ErrDuplicate).Once()

	err := suite.service.AssignRole(suite.ctx, suite.orgID, suite.viewerRole.RoleID, suite.memberUser.UserID, suite.adminUser.UserID)

	suite.Require().NoError(err)
	suite.mockRoleRepo.AssertExpectations(suite.T())
}

func (suite *RoleServiceTestSuite) TestDeleteRole_LastIAMRoleBlocked() {
	suite.expectPrincipal(suite.adminUser, []domain.Role{suite.adminRole})
	suite.mockRoleRepo.On("FindRoleByID", suite.ctx, suite.adminRole.RoleID).Return(&suite.adminRole, nil).Once()
	// The only other role cannot manage IAM, so deleting the admin role would
	// lock the organization out of role administration.
	suite.mockRoleRepo.On("ListRolesByOrganization", suite.ctx, suite.orgID).
		Return([]domain.Role{suite.adminRole, suite.viewerRole}, nil).Once()

	err := suite.service.DeleteRole(suite.ctx, suite.orgID, suite.adminRole.RoleID, suite.adminUser.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "DeleteRole", mock.Anything, mock.Anything)
}

func (suite *RoleServiceTestSuite) TestDeleteRole_AnotherIAMRoleRemains() {
	suite.expectPrincipal(suite.adminUser, []domain.Role{suite.adminRole})
	secondAdmin := domain.Role{
		RoleID:         "role-admin-2",
		OrganizationID: suite.orgID,
		Name:           "IAM Admin",
		Permissions:    []domain.Permission{domain.ManageIAM},
	}
	suite.mockRoleRepo.On("FindRoleByID", suite.ctx, suite.adminRole.RoleID).Return(&suite.adminRole, nil).Once()
	suite.mockRoleRepo.On("ListRolesByOrganization", suite.ctx, suite.orgID).
		Return([]domain.Role{suite.adminRole, secondAdmin}, nil).Once()
	suite.mockRoleRepo.On("DeleteRole", suite.ctx, suite.adminRole.RoleID).Return(nil).Once()

	err := suite.service.DeleteRole(suite.ctx, suite.orgID, suite.adminRole.RoleID, suite.adminUser.UserID)

	suite.Require().NoError(err)
	suite.mockRoleRepo.AssertExpectations(suite.T())
}

func (suite *RoleServiceTestSuite) TestDeleteRole_NonIAMRoleSkipsGuard() {
	suite.expectPrincipal(suite.adminUser, []domain.Role{suite.adminRole})
	suite.mockRoleRepo.On("FindRoleByID", suite.ctx, suite.viewerRole.RoleID).Return(&suite.viewerRole, nil).Once()
	suite.mockRoleRepo.On("DeleteRole", suite.ctx, suite.viewerRole.RoleID).Return(nil).Once()

	err := suite.service.DeleteRole(suite.ctx, suite.orgID, suite.viewerRole.RoleID, suite.adminUser.UserID)

	suite.Require().NoError(err)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "ListRolesByOrganization", mock.Anything, mock.Anything)
}

func TestRoleServiceSuite(t *testing.T) {
	suite.Run(t, new(RoleServiceTestSuite))
}
