package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/services"
)

type SettingServiceTestSuite struct {
	suite.Suite
	mockSettingRepo *MockSettingRepository
	mockAuthorizer  *MockAuthorizer
	cache           *memoryCache
	service         portssvc.SettingSvcFacade
	ctx             context.Context

	orgID  string
	userID string
}

func (suite *SettingServiceTestSuite) SetupTest() {
	suite.mockSettingRepo = new(MockSettingRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.cache = newMemoryCache()
	suite.service = services.NewSettingService(suite.mockSettingRepo, suite.cache, 5*time.Minute, suite.mockAuthorizer)
	suite.ctx = context.Background()
	suite.orgID = "org-1"
	suite.userID = "user-1"
}

func (suite *SettingServiceTestSuite) allowAll() {
	suite.mockAuthorizer.On("Authorize", suite.ctx, suite.orgID, suite.userID, domain.ManageSetting).Return(nil)
}

func (suite *SettingServiceTestSuite) TestGetSetting_PopulatesCacheOnce() {
	suite.allowAll()
	stored := &domain.Setting{OrganizationID: suite.orgID, Key: "fiscal_year_start", Value: "04-01"}
	// A single repository hit serves both reads; the second comes from cache.
	suite.mockSettingRepo.On("FindSetting", suite.ctx, suite.orgID, "fiscal_year_start").
		Return(stored, nil).Once()

	first, err := suite.service.GetSetting(suite.ctx, suite.orgID, "fiscal_year_start", suite.userID)
	suite.Require().NoError(err)
	suite.Equal("04-01", first)

	second, err := suite.service.GetSetting(suite.ctx, suite.orgID, "fiscal_year_start", suite.userID)
	suite.Require().NoError(err)
	suite.Equal("04-01", second)

	suite.mockSettingRepo.AssertExpectations(suite.T())
	suite.Equal(1, suite.cache.loads)
}

func (suite *SettingServiceTestSuite) TestGetSetting_CacheKeyNamespacedOnce() {
	suite.allowAll()
	stored := &domain.Setting{OrganizationID: suite.orgID, Key: "theme", Value: "dark"}
	suite.mockSettingRepo.On("FindSetting", suite.ctx, suite.orgID, "theme").Return(stored, nil).Once()

	_, err := suite.service.GetSetting(suite.ctx, suite.orgID, "theme", suite.userID)

	suite.Require().NoError(err)
	// One "setting:" namespace exactly; the cache stores keys untouched.
	suite.Contains(suite.cache.values, "setting:org-1:theme")
	suite.Len(suite.cache.values, 1)
}

func (suite *SettingServiceTestSuite) TestGetSetting_NotFound() {
	suite.allowAll()
	suite.mockSettingRepo.On("FindSetting", suite.ctx, suite.orgID, "missing").
		Return(nil, errNotFound).Once()

	_, err := suite.service.GetSetting(suite.ctx, suite.orgID, "missing", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SettingServiceTestSuite) TestUpsertSetting_InvalidatesCache() {
	suite.allowAll()
	stored := &domain.Setting{OrganizationID: suite.orgID, Key: "default_currency", Value: "USD"}
	suite.mockSettingRepo.On("FindSetting", suite.ctx, suite.orgID, "default_currency").
		Return(stored, nil).Once()

	value, err := suite.service.GetSetting(suite.ctx, suite.orgID, "default_currency", suite.userID)
	suite.Require().NoError(err)
	suite.Equal("USD", value)

	suite.mockSettingRepo.On("UpsertSetting", suite.ctx, mock.AnythingOfType("domain.Setting")).
		Return(nil).Once()
	err = suite.service.UpsertSetting(suite.ctx, suite.orgID, "default_currency", "EUR", suite.userID)
	suite.Require().NoError(err)
	suite.Equal(1, suite.cache.invalid)

	// The next read misses the cache and sees the new value.
	updated := &domain.Setting{OrganizationID: suite.orgID, Key: "default_currency", Value: "EUR"}
	suite.mockSettingRepo.On("FindSetting", suite.ctx, suite.orgID, "default_currency").
		Return(updated, nil).Once()

	value, err = suite.service.GetSetting(suite.ctx, suite.orgID, "default_currency", suite.userID)
	suite.Require().NoError(err)
	suite.Equal("EUR", value)
	suite.mockSettingRepo.AssertExpectations(suite.T())
}

func (suite *SettingServiceTestSuite) TestUpsertSetting_EmptyKey() {
	suite.allowAll()

	err := suite.service.UpsertSetting(suite.ctx, suite.orgID, "", "value", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSettingRepo.AssertNotCalled(suite.T(), "UpsertSetting", mock.Anything, mock.Anything)
}

func (suite *SettingServiceTestSuite) TestDeleteSetting_InvalidatesCache() {
	suite.allowAll()
	suite.mockSettingRepo.On("DeleteSetting", suite.ctx, suite.orgID, "default_currency").
		Return(nil).Once()

	err := suite.service.DeleteSetting(suite.ctx, suite.orgID, "default_currency", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, suite.cache.invalid)
	suite.mockSettingRepo.AssertExpectations(suite.T())
}

func (suite *SettingServiceTestSuite) TestGetSetting_Forbidden() {
	suite.mockAuthorizer.On("Authorize", suite.ctx, suite.orgID, suite.userID, domain.ManageSetting).
		Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.GetSetting(suite.ctx, suite.orgID, "any", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockSettingRepo.AssertNotCalled(suite.T(), "FindSetting", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettingServiceTestSuite) TestGetSetting_NilCacheGoesDirect() {
	noCacheService := services.NewSettingService(suite.mockSettingRepo, nil, time.Minute, suite.mockAuthorizer)
	suite.allowAll()
	stored := &domain.Setting{OrganizationID: suite.orgID, Key: "k", Value: "v"}
	suite.mockSettingRepo.On("FindSetting", suite.ctx, suite.orgID, "k").Return(stored, nil).Twice()

	for i := 0; i < 2; i++ {
		value, err := noCacheService.GetSetting(suite.ctx, suite.orgID, "k", suite.userID)
		suite.Require().NoError(err)
		suite.Equal("v", value)
	}
	suite.mockSettingRepo.AssertExpectations(suite.T())
}

func TestSettingServiceSuite(t *testing.T) {
	suite.Run(t, new(SettingServiceTestSuite))
}
