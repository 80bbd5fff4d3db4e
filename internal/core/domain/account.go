package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side on which an account naturally increases.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "DEBIT"
	NormalCredit NormalBalance = "CREDIT"
)

// NormalBalance derives the normal balance side from the account type.
// ASSET/EXPENSE accounts increase on debits; LIABILITY/EQUITY/REVENUE
// accounts increase on credits. Unknown types return an empty side, which the
// balance calculator rejects.
func (t AccountType) NormalBalance() NormalBalance {
	switch t {
	case Asset, Expense:
		return NormalDebit
	case Liability, Equity, Revenue:
		return NormalCredit
	default:
		return ""
	}
}

// Account represents a ledger account within the chart of accounts.
// NormalBalance is immutable once entry lines exist against the account; the
// repository enforces that on update.
type Account struct {
	AccountID       string          `json:"accountID"`      // Primary Key (e.g., UUID)
	OrganizationID  string          `json:"organizationID"` // FK -> organizations.organization_id (NON-NULL)
	Code            string          `json:"code"`           // User-facing account code, e.g. "1-1000"
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	NormalBalance   NormalBalance   `json:"normalBalance"`
	CurrencyCode    string          `json:"currencyCode"`
	ParentAccountID string          `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing)
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"` // Signed amount in minor currency units
	AuditFields
}
