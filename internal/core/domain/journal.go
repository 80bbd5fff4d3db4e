package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryLineType indicates whether an entry line is a Debit or a Credit.
type EntryLineType string

const (
	Debit  EntryLineType = "DEBIT"
	Credit EntryLineType = "CREDIT"
)

// JournalEntryStatus indicates the state of a journal entry.
type JournalEntryStatus string

const (
	Posted   JournalEntryStatus = "POSTED"
	Reversed JournalEntryStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple entry lines. Debits always equal credits across the lines; the
// journal service enforces that before persisting.
type JournalEntry struct {
	EntryID          string             `json:"entryID"`        // Primary Key (e.g., UUID)
	OrganizationID   string             `json:"organizationID"` // FK -> organizations.organization_id (NON-NULL)
	EntryDate        time.Time          `json:"entryDate"`      // Date the event occurred
	Description      string             `json:"description"`
	CurrencyCode     string             `json:"currencyCode"`
	Status           JournalEntryStatus `json:"status"` // Default: Posted
	ReversingEntryID string             `json:"reversingEntryID,omitempty"`
	AuditFields
}

// EntryLine represents a single line item within a JournalEntry, affecting one
// account. Amount is always non-negative; direction comes from Type.
type EntryLine struct {
	LineID       string          `json:"lineID"`  // Primary Key (e.g., UUID)
	EntryID      string          `json:"entryID"` // FK -> journal_entries.entry_id (Not Null)
	AccountID    string          `json:"accountID"`
	Type         EntryLineType   `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Notes        string          `json:"notes"`
	EntryDate    time.Time       `json:"entryDate"`
	AuditFields
}
