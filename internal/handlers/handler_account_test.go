package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/dto"
	"github.com/dayatwork/sismo-v2-sub002/internal/handlers"
	"github.com/dayatwork/sismo-v2-sub002/internal/middleware"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, organizationID string, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, organizationID string, limit int, offset int, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, limit, offset, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	args := m.Called(ctx, organizationID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) GetAccountBalance(ctx context.Context, organizationID string, accountID string, from, to *time.Time, userID string) (*domain.AccountBalance, error) {
	args := m.Called(ctx, organizationID, accountID, from, to, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "sismo-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)

	v1 := suite.router.Group("/api/v1/organizations/:organizationID")
	handlers.RegisterAccountRoutes(v1, suite.mockAccountService)
}

func (suite *AccountHandlerTestSuite) authedRequest(method, url string, body []byte, userID string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestGetAccountBalance_Success() {
	organizationID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	expectedBalance := &domain.AccountBalance{
		AccountID:      accountID,
		NormalBalance:  domain.NormalDebit,
		OpeningBalance: decimal.NewFromInt(1000),
		CurrentBalance: decimal.NewFromInt(1300),
		PercentChange:  decimal.NewFromInt(30),
		LineCount:      2,
	}

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.mockAccountService.On("GetAccountBalance",
		mock.Anything,
		organizationID,
		accountID,
		mock.MatchedBy(func(t *time.Time) bool { return t != nil && t.Equal(from) }),
		(*time.Time)(nil),
		userID,
	).Return(expectedBalance, nil).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts/%s/balance?from=2026-01-01", organizationID, accountID)
	w := suite.authedRequest(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.AccountBalanceResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(accountID, responseBody.AccountID)
	suite.True(responseBody.CurrentBalance.Equal(decimal.NewFromInt(1300)))
	suite.True(responseBody.PercentChange.Equal(decimal.NewFromInt(30)))

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccountBalance_InvalidDate() {
	organizationID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts/%s/balance?from=not-a-date", organizationID, accountID)
	w := suite.authedRequest(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetAccountBalance")
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	organizationID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, organizationID, accountID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts/%s", organizationID, accountID)
	w := suite.authedRequest(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	organizationID := uuid.NewString()
	userID := uuid.NewString()

	req := dto.CreateAccountRequest{
		Code:         "1000",
		Name:         "Cash",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}
	body, _ := json.Marshal(req)

	created := &domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: organizationID,
		Code:           "1000",
		Name:           "Cash",
		AccountType:    domain.Asset,
		NormalBalance:  domain.NormalDebit,
		CurrencyCode:   "USD",
		IsActive:       true,
	}
	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		organizationID,
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool { return r.Code == "1000" && r.AccountType == domain.Asset }),
		userID,
	).Return(created, nil).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts", organizationID)
	w := suite.authedRequest(http.MethodPost, url, body, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.AccountResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err)
	suite.Equal(created.AccountID, responseBody.AccountID)
	suite.Equal(domain.NormalDebit, responseBody.NormalBalance)

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccounts_Unauthenticated() {
	url := fmt.Sprintf("/api/v1/organizations/%s/accounts", uuid.NewString())
	req, _ := http.NewRequest(http.MethodGet, url, nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts")
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
