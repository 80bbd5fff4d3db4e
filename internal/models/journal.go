package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryStatus indicates the state of a journal entry row.
type JournalEntryStatus string

const (
	Posted   JournalEntryStatus = "POSTED"
	Reversed JournalEntryStatus = "REVERSED"
)

// JournalEntry represents a journal entry row.
type JournalEntry struct {
	EntryID          string             `db:"entry_id"`
	OrganizationID   string             `db:"organization_id"`
	EntryDate        time.Time          `db:"entry_date"`
	Description      string             `db:"description"`
	CurrencyCode     string             `db:"currency_code"`
	Status           JournalEntryStatus `db:"status"`
	ReversingEntryID sql.NullString     `db:"reversing_entry_id"`
	AuditFields
}

// EntryLine represents an entry line row.
type EntryLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	LineType     string          `db:"line_type"` // DEBIT or CREDIT
	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode string          `db:"currency_code"`
	Notes        string          `db:"notes"`
	EntryDate    time.Time       `db:"entry_date"`
	AuditFields
}
