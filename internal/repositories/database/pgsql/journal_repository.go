package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dayatwork/sismo-v2-sub002/internal/apperrors"
	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portsrepo "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/repositories"
	"github.com/dayatwork/sismo-v2-sub002/internal/models"
	"github.com/dayatwork/sismo-v2-sub002/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(db *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func toModelEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:        d.EntryID,
		OrganizationID: d.OrganizationID,
		EntryDate:      d.EntryDate,
		Description:    d.Description,
		CurrencyCode:   d.CurrencyCode,
		Status:         models.JournalEntryStatus(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.ReversingEntryID != "" {
		m.ReversingEntryID = sql.NullString{String: d.ReversingEntryID, Valid: true}
	}
	return m
}

func toDomainEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:        m.EntryID,
		OrganizationID: m.OrganizationID,
		EntryDate:      m.EntryDate,
		Description:    m.Description,
		CurrencyCode:   m.CurrencyCode,
		Status:         domain.JournalEntryStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.ReversingEntryID.Valid {
		d.ReversingEntryID = m.ReversingEntryID.String
	}
	return d
}

func toModelLine(d domain.EntryLine) models.EntryLine {
	return models.EntryLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		LineType:     string(d.Type),
		Amount:       d.Amount,
		CurrencyCode: d.CurrencyCode,
		Notes:        d.Notes,
		EntryDate:    d.EntryDate,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		Type:         domain.EntryLineType(m.LineType),
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
		Notes:        m.Notes,
		EntryDate:    m.EntryDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const entryColumns = `entry_id, organization_id, entry_date, description, currency_code, status,
		reversing_entry_id, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.EntryDate,
		&m.Description,
		&m.CurrencyCode,
		&m.Status,
		&m.ReversingEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const lineColumns = `line_id, entry_id, account_id, line_type, amount, currency_code, notes, entry_date,
		created_at, created_by, last_updated_at, last_updated_by`

func scanLine(row pgx.Row) (models.EntryLine, error) {
	var m models.EntryLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.LineType,
		&m.Amount,
		&m.CurrencyCode,
		&m.Notes,
		&m.EntryDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry persists a journal entry and its lines in one transaction; either
// everything lands or nothing does.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := toModelEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (entry_id, organization_id, entry_date, description, currency_code,
			status, reversing_entry_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.OrganizationID,
		m.EntryDate,
		m.Description,
		m.CurrencyCode,
		m.Status,
		m.ReversingEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, err)
	}

	lineQuery := `
		INSERT INTO entry_lines (line_id, entry_id, account_id, line_type, amount, currency_code,
			notes, entry_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, line := range lines {
		lm := toModelLine(line)
		_, err = tx.Exec(ctx, lineQuery,
			lm.LineID,
			lm.EntryID,
			lm.AccountID,
			lm.LineType,
			lm.Amount,
			lm.CurrencyCode,
			lm.Notes,
			lm.EntryDate,
			lm.CreatedAt,
			lm.CreatedBy,
			lm.LastUpdatedAt,
			lm.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert entry line %s: %w", line.LineID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}
	d := toDomainEntry(m)
	return &d, nil
}

// ListEntriesByOrganization pages through an organization's entries newest
// first using an (entry_date, created_at) cursor token.
func (r *PgxJournalRepository) ListEntriesByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []interface{}{organizationID}
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE organization_id = $1
	`
	if !includeReversals {
		query += ` AND status != 'REVERSED'`
	}
	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, entryDate, createdAt)
		query += ` AND (entry_date, created_at) < ($2, $3)`
	}
	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, limit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, toDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	var newNextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newNextToken = &token
	}
	return entries, newNextToken, nil
}

func (r *PgxJournalRepository) UpdateEntryStatusAndLinks(ctx context.Context, entryID string, status domain.JournalEntryStatus, reversingEntryID *string, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, reversing_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, string(status), reversingEntryID, updatedAt, updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to update status of journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM entry_lines
		WHERE entry_id = $1
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry lines: %w", err)
	}
	defer rows.Close()

	return collectLines(rows)
}

func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.EntryLine{}, nil
	}

	query := `
		SELECT ` + lineColumns + `
		FROM entry_lines
		WHERE entry_id = ANY($1)
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry lines by entry IDs: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]domain.EntryLine, len(entryIDs))
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry line row: %w", err)
		}
		grouped[m.EntryID] = append(grouped[m.EntryID], toDomainLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry line rows: %w", err)
	}
	return grouped, nil
}

// ListLinesByAccountID returns all lines posted to an account, optionally
// bounded by the half-open range [from, to) on entry_date.
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, organizationID string, accountID string, from, to *time.Time) ([]domain.EntryLine, error) {
	args := []interface{}{organizationID, accountID}
	query := `
		SELECT el.line_id, el.entry_id, el.account_id, el.line_type, el.amount, el.currency_code,
			el.notes, el.entry_date, el.created_at, el.created_by, el.last_updated_at, el.last_updated_by
		FROM entry_lines el
		JOIN journal_entries je ON je.entry_id = el.entry_id
		WHERE je.organization_id = $1 AND el.account_id = $2
	`
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND el.entry_date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND el.entry_date < $%d`, len(args))
	}
	query += `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	return collectLines(rows)
}

func collectLines(rows pgx.Rows) ([]domain.EntryLine, error) {
	lines := make([]domain.EntryLine, 0)
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry line row: %w", err)
		}
		lines = append(lines, toDomainLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry line rows: %w", err)
	}
	return lines, nil
}
