package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	portsrepo "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetTrialBalanceData retrieves per-account debit/credit totals as of a date.
// Reversed entries and their reversals stay in; they cancel each other out.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, organizationID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			SUM(CASE WHEN el.line_type = 'DEBIT' THEN el.amount ELSE 0 END) AS total_debit,
			SUM(CASE WHEN el.line_type = 'CREDIT' THEN el.amount ELSE 0 END) AS total_credit
		FROM entry_lines el
		JOIN accounts a ON a.account_id = el.account_id
		JOIN journal_entries je ON je.entry_id = el.entry_id
		WHERE je.organization_id = $1
			AND je.entry_date <= $2
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code
	`

	rows, err := r.Pool.Query(ctx, query, organizationID, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := make([]domain.TrialBalanceRow, 0)
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	return result, nil
}

// GetProfitAndLossData retrieves net amounts for revenue and expense accounts
// over [from, to]. Revenue nets credit-minus-debit, expenses the opposite.
func (r *reportingRepository) GetProfitAndLossData(ctx context.Context, organizationID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.account_type,
			a.account_id,
			a.name,
			SUM(CASE
				WHEN a.account_type = 'REVENUE' AND el.line_type = 'CREDIT' THEN el.amount
				WHEN a.account_type = 'REVENUE' AND el.line_type = 'DEBIT' THEN -el.amount
				WHEN a.account_type = 'EXPENSE' AND el.line_type = 'DEBIT' THEN el.amount
				ELSE -el.amount
			END) AS net
		FROM entry_lines el
		JOIN accounts a ON a.account_id = el.account_id
		JOIN journal_entries je ON je.entry_id = el.entry_id
		WHERE je.organization_id = $1
			AND je.entry_date BETWEEN $2 AND $3
			AND a.account_type IN ('REVENUE', 'EXPENSE')
		GROUP BY a.account_type, a.account_id, a.name
		ORDER BY a.name
	`

	rows, err := r.Pool.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying profit and loss data: %w", err)
	}
	defer rows.Close()

	revenue := make([]domain.AccountAmount, 0)
	expenses := make([]domain.AccountAmount, 0)

	for rows.Next() {
		var accountType, accountID, name string
		var netAmount decimal.Decimal

		if err := rows.Scan(&accountType, &accountID, &name, &netAmount); err != nil {
			return nil, nil, fmt.Errorf("error scanning profit and loss row: %w", err)
		}

		accountAmount := domain.AccountAmount{
			AccountID: accountID,
			Name:      name,
			NetAmount: netAmount,
		}
		switch domain.AccountType(accountType) {
		case domain.Revenue:
			revenue = append(revenue, accountAmount)
		case domain.Expense:
			expenses = append(expenses, accountAmount)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating profit and loss rows: %w", err)
	}

	return revenue, expenses, nil
}

// GetBalanceSheetData retrieves net amounts for asset, liability and equity
// accounts as of a date, opening balances included.
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, organizationID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.account_type,
			a.account_id,
			a.name,
			a.opening_balance + COALESCE(SUM(CASE
				WHEN a.normal_balance = el.line_type THEN el.amount
				ELSE -el.amount
			END), 0) AS net
		FROM accounts a
		LEFT JOIN entry_lines el ON el.account_id = a.account_id
		LEFT JOIN journal_entries je ON je.entry_id = el.entry_id AND je.entry_date <= $2
		WHERE a.organization_id = $1
			AND a.account_type IN ('ASSET', 'LIABILITY', 'EQUITY')
		GROUP BY a.account_type, a.account_id, a.name, a.opening_balance
		ORDER BY a.name
	`

	rows, err := r.Pool.Query(ctx, query, organizationID, asOf)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error querying balance sheet data: %w", err)
	}
	defer rows.Close()

	assets := make([]domain.AccountAmount, 0)
	liabilities := make([]domain.AccountAmount, 0)
	equity := make([]domain.AccountAmount, 0)

	for rows.Next() {
		var accountType, accountID, name string
		var netAmount decimal.Decimal

		if err := rows.Scan(&accountType, &accountID, &name, &netAmount); err != nil {
			return nil, nil, nil, fmt.Errorf("error scanning balance sheet row: %w", err)
		}

		accountAmount := domain.AccountAmount{
			AccountID: accountID,
			Name:      name,
			NetAmount: netAmount,
		}
		switch domain.AccountType(accountType) {
		case domain.Asset:
			assets = append(assets, accountAmount)
		case domain.Liability:
			liabilities = append(liabilities, accountAmount)
		case domain.Equity:
			equity = append(equity, accountAmount)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("error iterating balance sheet rows: %w", err)
	}

	return assets, liabilities, equity, nil
}
