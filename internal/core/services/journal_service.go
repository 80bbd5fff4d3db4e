package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portsrepo "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/repositories"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/dto"
	"github.com/dayatwork/sismo-v2-sub002/internal/utils/accounting"
)

var (
	ErrEntryMinAccounts   = errors.New("entry must affect at least two different accounts")
	ErrAccountNotFound    = errors.New("account not found")
	ErrCurrencyMismatch   = errors.New("account currency does not match entry currency")
	ErrDescriptionMissing = errors.New("entry description is required")
)

// journalService provides journal entry operations.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryWithTx
	accountSvc  portssvc.AccountReaderSvc
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountSvc portssvc.AccountReaderSvc, authorizer portssvc.AuthorizerSvc) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
	}
	svc.Authorizer = authorizer
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry validates and persists a balanced journal entry.
func (s *journalService) CreateEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, organizationID, creatorUserID, domain.ManageFinance); err != nil {
		return nil, err
	}

	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}

	// An entry moving value within a single account is meaningless.
	accountSet := make(map[string]bool)
	for _, line := range req.Lines {
		accountSet[line.AccountID] = true
	}
	if len(accountSet) < 2 {
		return nil, ErrEntryMinAccounts
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := make([]domain.EntryLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		// Zero moves no value and the schema rejects it at insert anyway.
		if lineReq.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: line amount must be positive, got %s", apperrors.ErrValidation, lineReq.Amount.String())
		}
		lines[i] = domain.EntryLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    lineReq.AccountID,
			Type:         lineReq.Type,
			Amount:       lineReq.Amount,
			CurrencyCode: req.CurrencyCode,
			Notes:        lineReq.Notes,
			EntryDate:    req.Date,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	// Double-entry check: non-negative amounts, debits equal credits.
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	uniqueAccountIDs := uniqueStrings(accountIDs)
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, organizationID, uniqueAccountIDs, creatorUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for entry creation",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		if acc.CurrencyCode != req.CurrencyCode {
			return nil, fmt.Errorf("%w: account currency %s does not match entry currency %s for account %s", ErrCurrencyMismatch, acc.CurrencyCode, req.CurrencyCode, id)
		}
	}

	entry := domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: organizationID,
		EntryDate:      req.Date,
		Description:    req.Description,
		CurrencyCode:   req.CurrencyCode,
		Status:         domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry created successfully",
		slog.String("entry_id", entry.EntryID),
		slog.String("organization_id", organizationID))
	return &entry, nil
}

// GetEntry retrieves a journal entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, []domain.EntryLine, error) {
	if err := s.AuthorizeUser(ctx, organizationID, userID, domain.ManageFinance); err != nil {
		return nil, nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry by ID", slog.String("entry_id", entryID))
		}
		return nil, nil, err
	}

	if entry.OrganizationID != organizationID {
		// Obscure existence from other organizations.
		return nil, nil, apperrors.ErrNotFound
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for journal entry", slog.String("entry_id", entryID))
		return nil, nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
	}

	return entry, lines, nil
}

// ListEntries retrieves a paginated list of entries for an organization using
// token-based pagination.
func (s *journalService) ListEntries(ctx context.Context, organizationID string, params dto.ListEntriesParams, userID string) ([]domain.JournalEntry, *string, error) {
	if err := s.AuthorizeUser(ctx, organizationID, userID, domain.ManageFinance); err != nil {
		return nil, nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByOrganization(ctx, organizationID, limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("organization_id", organizationID))
		return nil, nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}

	return entries, nextToken, nil
}

// ReverseEntry creates a reversing entry for a posted entry and marks the
// original as reversed. The reversing entry swaps every line's side and keeps
// the amounts, so the two entries cancel exactly.
func (s *journalService) ReverseEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, organizationID, userID, domain.ManageFinance); err != nil {
		return nil, err
	}

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to fetch original entry for reversal", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve original entry: %w", err)
	}

	if original.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: entry status is %s, expected POSTED", apperrors.ErrConflict, original.Status)
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch original lines for reversal", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve original lines: %w", err)
	}

	now := time.Now().UTC()
	newEntryID := uuid.NewString()

	reversingEntry := domain.JournalEntry{
		EntryID:        newEntryID,
		OrganizationID: organizationID,
		EntryDate:      original.EntryDate,
		Description:    fmt.Sprintf("Reversal of: %s", original.Description),
		CurrencyCode:   original.CurrencyCode,
		Status:         domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	reversingLines := make([]domain.EntryLine, len(originalLines))
	for i, origLine := range originalLines {
		newType := domain.Credit
		if origLine.Type == domain.Credit {
			newType = domain.Debit
		}
		reversingLines[i] = domain.EntryLine{
			LineID:       uuid.NewString(),
			EntryID:      newEntryID,
			AccountID:    origLine.AccountID,
			Type:         newType,
			Amount:       origLine.Amount,
			CurrencyCode: origLine.CurrencyCode,
			Notes:        origLine.Notes,
			EntryDate:    origLine.EntryDate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.journalRepo.SaveEntry(ctx, reversingEntry, reversingLines); err != nil {
		s.LogError(ctx, err, "Failed to save reversing entry", slog.String("original_entry_id", entryID))
		return nil, fmt.Errorf("failed to save reversing entry: %w", err)
	}

	if err := s.journalRepo.UpdateEntryStatusAndLinks(ctx, original.EntryID, domain.Reversed, &newEntryID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update original entry status after reversal",
			slog.String("original_entry_id", entryID),
			slog.String("reversing_entry_id", newEntryID))
		return nil, fmt.Errorf("failed to update original entry status: %w", err)
	}

	s.LogInfo(ctx, "Journal entry reversed successfully",
		slog.String("original_entry_id", entryID),
		slog.String("reversing_entry_id", newEntryID))
	return &reversingEntry, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
