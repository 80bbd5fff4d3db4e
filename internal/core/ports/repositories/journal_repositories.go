package repositories

import (
	"context"
	"time"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entry data
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByOrganization retrieves a paginated list of entries for an
	// organization using token-based pagination. Returns the entries, a token
	// for the next page, and an error.
	ListEntriesByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal entry data
type JournalEntryWriter interface {
	// SaveEntry persists a journal entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error

	// UpdateEntryStatusAndLinks updates the status and reversal linkage of an entry.
	UpdateEntryStatusAndLinks(ctx context.Context, entryID string, status domain.JournalEntryStatus, reversingEntryID *string, updatedByUserID string, updatedAt time.Time) error
}

// EntryLineReader defines read operations for entry line data
type EntryLineReader interface {
	// FindLinesByEntryID retrieves all lines of a single journal entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error)

	// ListLinesByAccountID retrieves all lines posted to an account, optionally
	// bounded by the half-open date range [from, to). Either bound may be nil.
	// The balance calculator needs no particular order, so none is promised.
	ListLinesByAccountID(ctx context.Context, organizationID string, accountID string, from, to *time.Time) ([]domain.EntryLine, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	EntryLineReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
