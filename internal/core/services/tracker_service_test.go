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

type TrackerServiceTestSuite struct {
	suite.Suite
	mockTrackerRepo *MockTrackerRepository
	mockOrgRepo     *MockOrganizationRepository
	service         portssvc.TrackerSvcFacade
	ctx             context.Context

	orgID  string
	userID string
}

func (suite *TrackerServiceTestSuite) SetupTest() {
	suite.mockTrackerRepo = new(MockTrackerRepository)
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.service = services.NewTrackerService(suite.mockTrackerRepo, suite.mockOrgRepo)
	suite.ctx = context.Background()
	suite.orgID = "org-1"
	suite.userID = "user-1"
}

func (suite *TrackerServiceTestSuite) expectMembership() {
	membership := &domain.OrganizationMember{OrganizationID: suite.orgID, UserID: suite.userID}
	suite.mockOrgRepo.On("FindMembership", suite.ctx, suite.orgID, suite.userID).Return(membership, nil)
}

func (suite *TrackerServiceTestSuite) TestStartTracker_Success() {
	suite.expectMembership()
	suite.mockTrackerRepo.On("FindRunningTracker", suite.ctx, suite.orgID, suite.userID).
		Return(nil, errNotFound).Once()
	suite.mockTrackerRepo.On("SaveTracker", suite.ctx, mock.AnythingOfType("domain.TrackerItem")).
		Run(func(args mock.Arguments) {
			item := args.Get(1).(domain.TrackerItem)
			suite.Equal(suite.orgID, item.OrganizationID)
			suite.Equal(suite.userID, item.UserID)
			suite.Nil(item.EndAt)
			suite.NotEmpty(item.TrackerID)
		}).
		Return(nil).Once()

	item, err := suite.service.StartTracker(suite.ctx, suite.orgID, suite.userID, "Reconciling March")

	suite.Require().NoError(err)
	suite.Require().NotNil(item)
	suite.Equal("Reconciling March", item.TaskNote)
	suite.mockTrackerRepo.AssertExpectations(suite.T())
}

func (suite *TrackerServiceTestSuite) TestStartTracker_AlreadyRunning() {
	suite.expectMembership()
	running := &domain.TrackerItem{TrackerID: "tr-1", OrganizationID: suite.orgID, UserID: suite.userID}
	suite.mockTrackerRepo.On("FindRunningTracker", suite.ctx, suite.orgID, suite.userID).
		Return(running, nil).Once()

	item, err := suite.service.StartTracker(suite.ctx, suite.orgID, suite.userID, "Second task")

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTrackerRepo.AssertNotCalled(suite.T(), "SaveTracker", mock.Anything, mock.Anything)
}

func (suite *TrackerServiceTestSuite) TestStartTracker_NotAMember() {
	suite.mockOrgRepo.On("FindMembership", suite.ctx, suite.orgID, suite.userID).
		Return(nil, errNotFound).Once()

	_, err := suite.service.StartTracker(suite.ctx, suite.orgID, suite.userID, "Task")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTrackerRepo.AssertNotCalled(suite.T(), "FindRunningTracker", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TrackerServiceTestSuite) TestStopTracker_Success() {
	start := time.Now().Add(-30 * time.Minute)
	running := &domain.TrackerItem{
		TrackerID:      "tr-1",
		OrganizationID: suite.orgID,
		UserID:         suite.userID,
		StartAt:        start,
	}
	suite.mockTrackerRepo.On("FindRunningTracker", suite.ctx, suite.orgID, suite.userID).
		Return(running, nil).Once()
	suite.mockTrackerRepo.On("UpdateTracker", suite.ctx, mock.AnythingOfType("domain.TrackerItem")).
		Run(func(args mock.Arguments) {
			item := args.Get(1).(domain.TrackerItem)
			suite.Require().NotNil(item.EndAt)
			suite.True(item.EndAt.After(start))
		}).
		Return(nil).Once()

	item, err := suite.service.StopTracker(suite.ctx, suite.orgID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(item)
	suite.NotNil(item.EndAt)
	suite.mockTrackerRepo.AssertExpectations(suite.T())
}

func (suite *TrackerServiceTestSuite) TestStopTracker_NothingRunning() {
	suite.mockTrackerRepo.On("FindRunningTracker", suite.ctx, suite.orgID, suite.userID).
		Return(nil, errNotFound).Once()

	_, err := suite.service.StopTracker(suite.ctx, suite.orgID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TrackerServiceTestSuite) TestListTrackers_InvalidRange() {
	suite.expectMembership()
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(-24 * time.Hour)

	_, err := suite.service.ListTrackers(suite.ctx, suite.orgID, suite.userID, from, to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TrackerServiceTestSuite) TestSummarize_SumsClosedItems() {
	suite.expectMembership()
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	end1 := from.Add(2 * time.Hour)
	end2 := from.Add(5 * time.Hour)
	items := []domain.TrackerItem{
		{TrackerID: "tr-1", StartAt: from, EndAt: &end1},
		{TrackerID: "tr-2", StartAt: from.Add(4 * time.Hour), EndAt: &end2},
	}
	suite.mockTrackerRepo.On("ListTrackersByUser", suite.ctx, suite.orgID, suite.userID, from, to).
		Return(items, nil).Once()

	summary, err := suite.service.Summarize(suite.ctx, suite.orgID, suite.userID, from, to)

	suite.Require().NoError(err)
	suite.Equal(2, summary.ItemCount)
	suite.Equal(3*time.Hour, summary.TotalDuration)
}

func TestTrackerServiceSuite(t *testing.T) {
	suite.Run(t, new(TrackerServiceTestSuite))
}
