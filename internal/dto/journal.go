package dto

import (
	"time"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	"github.com/dayatwork/sismo-v2-sub002/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest defines one line of a new journal entry.
type CreateEntryLineRequest struct {
	AccountID string               `json:"accountID" binding:"required"`
	Type      domain.EntryLineType `json:"type" binding:"required,oneof=DEBIT CREDIT"`
	Amount    decimal.Decimal      `json:"amount" binding:"required"`
	Notes     string               `json:"notes"`
}

// CreateEntryRequest defines the payload for creating a journal entry.
type CreateEntryRequest struct {
	Date         time.Time                `json:"date" binding:"required"`
	Description  string                   `json:"description" binding:"required"`
	CurrencyCode string                   `json:"currencyCode" binding:"required,len=3"`
	Lines        []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit            int     `form:"limit,default=20"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals,default=false"`
}

// EntryLineResponse is the public representation of an entry line.
// DisplayAmount carries the presentation sign relative to the account's
// normal balance; Amount stays as stored.
type EntryLineResponse struct {
	LineID        string               `json:"lineID"`
	AccountID     string               `json:"accountID"`
	Type          domain.EntryLineType `json:"type"`
	Amount        decimal.Decimal      `json:"amount"`
	DisplayAmount *decimal.Decimal     `json:"displayAmount,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	EntryDate     time.Time            `json:"entryDate"`
}

// EntryResponse is the public representation of a journal entry.
type EntryResponse struct {
	EntryID          string                    `json:"entryID"`
	OrganizationID   string                    `json:"organizationID"`
	EntryDate        time.Time                 `json:"entryDate"`
	Description      string                    `json:"description"`
	CurrencyCode     string                    `json:"currencyCode"`
	Status           domain.JournalEntryStatus `json:"status"`
	ReversingEntryID string                    `json:"reversingEntryID,omitempty"`
	Lines            []EntryLineResponse       `json:"lines,omitempty"`
}

// ToEntryResponse converts an entry and its lines to the response DTO.
// normalBalances supplies the side per account so lines can carry display
// amounts; a missing account simply omits the display amount.
func ToEntryResponse(entry *domain.JournalEntry, lines []domain.EntryLine, normalBalances map[string]domain.NormalBalance) EntryResponse {
	resp := EntryResponse{
		EntryID:          entry.EntryID,
		OrganizationID:   entry.OrganizationID,
		EntryDate:        entry.EntryDate,
		Description:      entry.Description,
		CurrencyCode:     entry.CurrencyCode,
		Status:           entry.Status,
		ReversingEntryID: entry.ReversingEntryID,
		Lines:            make([]EntryLineResponse, len(lines)),
	}
	for i, line := range lines {
		lineResp := EntryLineResponse{
			LineID:    line.LineID,
			AccountID: line.AccountID,
			Type:      line.Type,
			Amount:    line.Amount,
			Notes:     line.Notes,
			EntryDate: line.EntryDate,
		}
		if nb, ok := normalBalances[line.AccountID]; ok {
			if display, err := accounting.DisplayAmount(line, nb); err == nil {
				lineResp.DisplayAmount = &display
			}
		}
		resp.Lines[i] = lineResp
	}
	return resp
}

// ListEntriesResponse wraps a page of journal entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
