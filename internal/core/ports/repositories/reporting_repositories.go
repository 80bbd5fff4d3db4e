package repositories

import (
	"context"
	"time"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
)

// ReportingRepository defines read-side aggregation queries for reports.
type ReportingRepository interface {
	// GetTrialBalanceData returns per-account debit/credit totals as of a date.
	GetTrialBalanceData(ctx context.Context, organizationID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData returns net amounts for revenue and expense
	// accounts over [from, to].
	GetProfitAndLossData(ctx context.Context, organizationID string, from, to time.Time) (revenue []domain.AccountAmount, expenses []domain.AccountAmount, err error)

	// GetBalanceSheetData returns net amounts for asset, liability and equity
	// accounts as of a date.
	GetBalanceSheetData(ctx context.Context, organizationID string, asOf time.Time) (assets []domain.AccountAmount, liabilities []domain.AccountAmount, equity []domain.AccountAmount, err error)
}
