package dto

import (
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data required to create a ledger account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required,max=20"`
	Name            string             `json:"name" binding:"required,max=150"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	CurrencyCode    string             `json:"currencyCode" binding:"required,len=3"`
	ParentAccountID *string            `json:"parentAccountID"`
	Description     string             `json:"description"`
	OpeningBalance  decimal.Decimal    `json:"openingBalance"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// AccountResponse is the public representation of a ledger account.
type AccountResponse struct {
	AccountID       string               `json:"accountID"`
	OrganizationID  string               `json:"organizationID"`
	Code            string               `json:"code"`
	Name            string               `json:"name"`
	AccountType     domain.AccountType   `json:"accountType"`
	NormalBalance   domain.NormalBalance `json:"normalBalance"`
	CurrencyCode    string               `json:"currencyCode"`
	ParentAccountID string               `json:"parentAccountID,omitempty"`
	Description     string               `json:"description"`
	IsActive        bool                 `json:"isActive"`
	OpeningBalance  decimal.Decimal      `json:"openingBalance"`
}

// ToAccountResponse converts a domain.Account to an AccountResponse DTO.
func ToAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       account.AccountID,
		OrganizationID:  account.OrganizationID,
		Code:            account.Code,
		Name:            account.Name,
		AccountType:     account.AccountType,
		NormalBalance:   account.NormalBalance,
		CurrencyCode:    account.CurrencyCode,
		ParentAccountID: account.ParentAccountID,
		Description:     account.Description,
		IsActive:        account.IsActive,
		OpeningBalance:  account.OpeningBalance,
	}
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a slice of domain.Account to its DTO.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		responses[i] = ToAccountResponse(&a)
	}
	return ListAccountsResponse{Accounts: responses}
}

// AccountBalanceResponse is the read-side balance of an account.
type AccountBalanceResponse struct {
	AccountID      string               `json:"accountID"`
	NormalBalance  domain.NormalBalance `json:"normalBalance"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	CurrentBalance decimal.Decimal      `json:"currentBalance"`
	PercentChange  decimal.Decimal      `json:"percentChange"`
	LineCount      int                  `json:"lineCount"`
}

// ToAccountBalanceResponse converts a domain.AccountBalance to its DTO.
func ToAccountBalanceResponse(balance *domain.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID:      balance.AccountID,
		NormalBalance:  balance.NormalBalance,
		OpeningBalance: balance.OpeningBalance,
		CurrentBalance: balance.CurrentBalance,
		PercentChange:  balance.PercentChange,
		LineCount:      balance.LineCount,
	}
}
