package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLineReader  *MockJournalRepository
	mockAuthorizer  *MockAuthorizer
	service         portssvc.AccountSvcFacade
	ctx             context.Context

	orgID  string
	userID string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLineReader = new(MockJournalRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewAccountService(suite.mockAccountRepo,
		services.WithAuthorizer(suite.mockAuthorizer),
		services.WithEntryLineReader(suite.mockLineReader))
	suite.ctx = context.Background()
	suite.orgID = "org-1"
	suite.userID = "user-1"
}

func (suite *AccountServiceTestSuite) allowAll() {
	suite.mockAuthorizer.On("Authorize", suite.ctx, suite.orgID, suite.userID, domain.ManageFinance).Return(nil)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DerivesNormalBalance() {
	suite.allowAll()
	req := dto.CreateAccountRequest{
		Code:         "2-1000",
		Name:         "Accounts Payable",
		AccountType:  domain.Liability,
		CurrencyCode: "USD",
	}

	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(domain.Account)
			suite.Equal(domain.NormalCredit, account.NormalBalance)
			suite.True(account.IsActive)
			suite.Equal(suite.orgID, account.OrganizationID)
		}).
		Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(domain.NormalCredit, account.NormalBalance)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownType() {
	suite.allowAll()
	req := dto.CreateAccountRequest{
		Code:         "9-0000",
		Name:         "Mystery",
		AccountType:  domain.AccountType("CONTRA"),
		CurrencyCode: "USD",
	}

	account, err := suite.service.CreateAccount(suite.ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	suite.allowAll()
	req := dto.CreateAccountRequest{
		Code:         "1-1000",
		Name:         "Cash",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}
	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(suite.ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentInOtherOrganization() {
	suite.allowAll()
	parentID := "acc-parent"
	req := dto.CreateAccountRequest{
		Code:            "1-1100",
		Name:            "Petty Cash",
		AccountType:     domain.Asset,
		CurrencyCode:    "USD",
		ParentAccountID: &parentID,
	}
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, parentID).
		Return(&domain.Account{AccountID: parentID, OrganizationID: "other-org"}, nil).Once()

	_, err := suite.service.CreateAccount(suite.ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_WrongOrganization() {
	suite.allowAll()
	account := &domain.Account{AccountID: "acc-1", OrganizationID: "other-org"}
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(account, nil).Once()

	got, err := suite.service.GetAccountByID(suite.ctx, suite.orgID, "acc-1", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(got)
}

func (suite *AccountServiceTestSuite) TestGetAccountsByIDs_FiltersOtherOrganizations() {
	suite.allowAll()
	accounts := map[string]domain.Account{
		"acc-1": {AccountID: "acc-1", OrganizationID: suite.orgID},
		"acc-2": {AccountID: "acc-2", OrganizationID: "other-org"},
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, []string{"acc-1", "acc-2"}).
		Return(accounts, nil).Once()

	got, err := suite.service.GetAccountsByIDs(suite.ctx, suite.orgID, []string{"acc-1", "acc-2"}, suite.userID)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.Contains(got, "acc-1")
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_TypeStaysImmutable() {
	suite.allowAll()
	stored := &domain.Account{
		AccountID:      "acc-1",
		OrganizationID: suite.orgID,
		Name:           "Cash",
		AccountType:    domain.Asset,
		NormalBalance:  domain.NormalDebit,
		IsActive:       true,
	}
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(stored, nil).Once()

	newName := "Cash on Hand"
	suite.mockAccountRepo.On("UpdateAccount", suite.ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(domain.Account)
			suite.Equal(newName, account.Name)
			suite.Equal(domain.Asset, account.AccountType)
			suite.Equal(domain.NormalDebit, account.NormalBalance)
		}).
		Return(nil).Once()

	updated, err := suite.service.UpdateAccount(suite.ctx, suite.orgID, "acc-1", dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountBalance_DebitNormalAccount() {
	suite.allowAll()
	account := &domain.Account{
		AccountID:      "acc-1",
		OrganizationID: suite.orgID,
		AccountType:    domain.Asset,
		NormalBalance:  domain.NormalDebit,
		OpeningBalance: decimal.NewFromInt(10000),
	}
	lines := []domain.EntryLine{
		{LineID: "l1", AccountID: "acc-1", Type: domain.Debit, Amount: decimal.NewFromInt(5000)},
		{LineID: "l2", AccountID: "acc-1", Type: domain.Credit, Amount: decimal.NewFromInt(2000)},
	}
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(account, nil).Once()
	suite.mockLineReader.On("ListLinesByAccountID", suite.ctx, suite.orgID, "acc-1", (*time.Time)(nil), (*time.Time)(nil)).
		Return(lines, nil).Once()

	balance, err := suite.service.GetAccountBalance(suite.ctx, suite.orgID, "acc-1", nil, nil, suite.userID)

	suite.Require().NoError(err)
	// 10000 + 5000 - 2000 for a debit-normal account.
	suite.True(balance.CurrentBalance.Equal(decimal.NewFromInt(13000)),
		"expected 13000, got %s", balance.CurrentBalance)
	suite.Equal(2, balance.LineCount)
	// (13000 - 10000) / 10000 * 100
	suite.True(balance.PercentChange.Equal(decimal.NewFromInt(30)),
		"expected 30, got %s", balance.PercentChange)
}

func (suite *AccountServiceTestSuite) TestGetAccountBalance_CreditNormalAccount() {
	suite.allowAll()
	account := &domain.Account{
		AccountID:      "acc-2",
		OrganizationID: suite.orgID,
		AccountType:    domain.Liability,
		NormalBalance:  domain.NormalCredit,
		OpeningBalance: decimal.NewFromInt(10000),
	}
	lines := []domain.EntryLine{
		{LineID: "l1", AccountID: "acc-2", Type: domain.Credit, Amount: decimal.NewFromInt(5000)},
		{LineID: "l2", AccountID: "acc-2", Type: domain.Debit, Amount: decimal.NewFromInt(2000)},
	}
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-2").Return(account, nil).Once()
	suite.mockLineReader.On("ListLinesByAccountID", suite.ctx, suite.orgID, "acc-2", (*time.Time)(nil), (*time.Time)(nil)).
		Return(lines, nil).Once()

	balance, err := suite.service.GetAccountBalance(suite.ctx, suite.orgID, "acc-2", nil, nil, suite.userID)

	suite.Require().NoError(err)
	// Credits increase a credit-normal account, debits decrease it.
	suite.True(balance.CurrentBalance.Equal(decimal.NewFromInt(13000)),
		"expected 13000, got %s", balance.CurrentBalance)
}

func (suite *AccountServiceTestSuite) TestGetAccountBalance_NoLines() {
	suite.allowAll()
	account := &domain.Account{
		AccountID:      "acc-1",
		OrganizationID: suite.orgID,
		AccountType:    domain.Asset,
		NormalBalance:  domain.NormalDebit,
		OpeningBalance: decimal.NewFromInt(7500),
	}
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(account, nil).Once()
	suite.mockLineReader.On("ListLinesByAccountID", suite.ctx, suite.orgID, "acc-1", (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.EntryLine{}, nil).Once()

	balance, err := suite.service.GetAccountBalance(suite.ctx, suite.orgID, "acc-1", nil, nil, suite.userID)

	suite.Require().NoError(err)
	suite.True(balance.CurrentBalance.Equal(account.OpeningBalance))
	suite.True(balance.PercentChange.IsZero())
	suite.Equal(0, balance.LineCount)
}

func (suite *AccountServiceTestSuite) TestGetAccountBalance_DateRangePassedThrough() {
	suite.allowAll()
	account := &domain.Account{
		AccountID:      "acc-1",
		OrganizationID: suite.orgID,
		AccountType:    domain.Asset,
		NormalBalance:  domain.NormalDebit,
	}
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "acc-1").Return(account, nil).Once()
	suite.mockLineReader.On("ListLinesByAccountID", suite.ctx, suite.orgID, "acc-1", &from, &to).
		Return([]domain.EntryLine{}, nil).Once()

	_, err := suite.service.GetAccountBalance(suite.ctx, suite.orgID, "acc-1", &from, &to, suite.userID)

	suite.Require().NoError(err)
	suite.mockLineReader.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_Forbidden() {
	suite.mockAuthorizer.On("Authorize", suite.ctx, suite.orgID, "outsider", domain.ManageFinance).
		Return(apperrors.ErrForbidden).Once()

	got, err := suite.service.GetAccountByID(suite.ctx, suite.orgID, "acc-1", "outsider")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(got)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_Forbidden() {
	suite.mockAuthorizer.On("Authorize", suite.ctx, suite.orgID, "outsider", domain.ManageFinance).
		Return(apperrors.ErrForbidden).Once()

	accounts, err := suite.service.ListAccounts(suite.ctx, suite.orgID, 20, 0, "outsider")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(accounts)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountBalance_Forbidden() {
	// A user outside the organization must never see another tenant's balance.
	suite.mockAuthorizer.On("Authorize", suite.ctx, suite.orgID, "outsider", domain.ManageFinance).
		Return(apperrors.ErrForbidden).Once()

	balance, err := suite.service.GetAccountBalance(suite.ctx, suite.orgID, "acc-1", nil, nil, "outsider")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(balance)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
	suite.mockLineReader.AssertNotCalled(suite.T(), "ListLinesByAccountID",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Forbidden() {
	suite.mockAuthorizer.On("Authorize", suite.ctx, suite.orgID, suite.userID, domain.ManageFinance).
		Return(apperrors.ErrForbidden).Once()

	err := suite.service.DeactivateAccount(suite.ctx, suite.orgID, "acc-1", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
