package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAuthorizer    *MockAuthorizer
	service           portssvc.ReportingService
	ctx               context.Context

	orgID  string
	userID string
	asOf   time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewReportingService(suite.mockReportingRepo,
		services.WithReportingAuthorizer(suite.mockAuthorizer))
	suite.ctx = context.Background()
	suite.orgID = "org-1"
	suite.userID = "user-1"
	suite.asOf = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *ReportingServiceTestSuite) allowAll() {
	suite.mockAuthorizer.On("Authorize", suite.ctx, suite.orgID, suite.userID, domain.ManageFinance).Return(nil)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Success() {
	suite.allowAll()
	rows := []domain.TrialBalanceRow{
		{AccountID: "acc-1", AccountCode: "1-1000", AccountType: domain.Asset, Debit: decimal.NewFromInt(15000), Credit: decimal.Zero},
		{AccountID: "acc-2", AccountCode: "4-1000", AccountType: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(15000)},
	}
	suite.mockReportingRepo.On("GetTrialBalanceData", suite.ctx, suite.orgID, suite.asOf).
		Return(rows, nil).Once()

	got, err := suite.service.TrialBalance(suite.ctx, suite.orgID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_ComputesNetProfit() {
	suite.allowAll()
	from := suite.asOf.AddDate(0, -1, 0)
	revenue := []domain.AccountAmount{
		{AccountID: "acc-sales", Name: "Sales", NetAmount: decimal.NewFromInt(20000)},
		{AccountID: "acc-interest", Name: "Interest Income", NetAmount: decimal.NewFromInt(500)},
	}
	expenses := []domain.AccountAmount{
		{AccountID: "acc-rent", Name: "Rent", NetAmount: decimal.NewFromInt(8000)},
	}
	suite.mockReportingRepo.On("GetProfitAndLossData", suite.ctx, suite.orgID, from, suite.asOf).
		Return(revenue, expenses, nil).Once()

	report, err := suite.service.ProfitAndLoss(suite.ctx, suite.orgID, from, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(report.NetProfit.Equal(decimal.NewFromInt(12500)),
		"expected 12500, got %s", report.NetProfit)
	suite.Len(report.Revenue, 2)
	suite.Len(report.Expenses, 1)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_ComputesTotals() {
	suite.allowAll()
	assets := []domain.AccountAmount{
		{AccountID: "acc-cash", NetAmount: decimal.NewFromInt(30000)},
		{AccountID: "acc-ar", NetAmount: decimal.NewFromInt(5000)},
	}
	liabilities := []domain.AccountAmount{
		{AccountID: "acc-ap", NetAmount: decimal.NewFromInt(12000)},
	}
	equity := []domain.AccountAmount{
		{AccountID: "acc-capital", NetAmount: decimal.NewFromInt(23000)},
	}
	suite.mockReportingRepo.On("GetBalanceSheetData", suite.ctx, suite.orgID, suite.asOf).
		Return(assets, liabilities, equity, nil).Once()

	report, err := suite.service.BalanceSheet(suite.ctx, suite.orgID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(35000)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(12000)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(23000)))
	// Assets equal liabilities plus equity when the books balance.
	suite.True(report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity)))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Forbidden() {
	suite.mockAuthorizer.On("Authorize", suite.ctx, suite.orgID, suite.userID, domain.ManageFinance).
		Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.TrialBalance(suite.ctx, suite.orgID, suite.asOf, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetTrialBalanceData", suite.ctx, suite.orgID, suite.asOf)
}

func TestReportingServiceSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
