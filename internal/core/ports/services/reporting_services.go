package services

import (
	"context"
	"time"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
)

// ReportingService defines financial report generation operations.
type ReportingService interface {
	// TrialBalance generates a trial balance report as of a specific date.
	TrialBalance(ctx context.Context, organizationID string, asOf time.Time, userID string) ([]domain.TrialBalanceRow, error)

	// ProfitAndLoss generates a profit and loss report for a period.
	ProfitAndLoss(ctx context.Context, organizationID string, from, to time.Time, userID string) (*domain.PAndLReport, error)

	// BalanceSheet generates a balance sheet report as of a specific date.
	BalanceSheet(ctx context.Context, organizationID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error)
}
