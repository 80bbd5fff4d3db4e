package services

import (
	"context"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	"github.com/dayatwork/sismo-v2-sub002/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntry retrieves a journal entry with its lines.
	GetEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, []domain.EntryLine, error)

	// ListEntries retrieves a paginated list of entries for an organization.
	ListEntries(ctx context.Context, organizationID string, params dto.ListEntriesParams, userID string) ([]domain.JournalEntry, *string, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateEntry validates and persists a balanced journal entry.
	CreateEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// ReverseEntry creates a reversing entry for a posted entry and marks the
	// original as reversed.
	ReverseEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
