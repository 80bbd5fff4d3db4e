// Package accounting holds the pure ledger arithmetic shared by services and
// repositories. Everything here operates on already-loaded data with
// shopspring/decimal; binary floating point never enters the calculation.
package accounting

import (
	"errors"
	"fmt"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates an entry line carried a negative amount.
	// Callers validate non-negativity upstream; this is the defensive reject
	// instead of a silent mis-sum.
	ErrInvalidAmount = errors.New("entry line amount must not be negative")

	// ErrInvalidNormalBalance indicates a normal balance side outside the
	// DEBIT/CREDIT enum. Unreachable with accounts built through the service
	// layer, but handled explicitly rather than defaulting a sign.
	ErrInvalidNormalBalance = errors.New("normal balance must be DEBIT or CREDIT")
)

// SignedAmount returns the contribution of a single entry line to the balance
// of an account with the given normal balance side. A line whose type matches
// the normal balance contributes +amount; the opposite side contributes
// -amount. A DEBIT-normal account (asset, expense) therefore grows on debit
// lines, and a CREDIT-normal account (liability, equity, revenue) grows on
// credit lines.
func SignedAmount(line domain.EntryLine, normalBalance domain.NormalBalance) (decimal.Decimal, error) {
	if line.Amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: got %s for line %s", ErrInvalidAmount, line.Amount.String(), line.LineID)
	}

	var matches bool
	switch normalBalance {
	case domain.NormalDebit:
		matches = line.Type == domain.Debit
	case domain.NormalCredit:
		matches = line.Type == domain.Credit
	default:
		return decimal.Zero, fmt.Errorf("%w: got %q", ErrInvalidNormalBalance, normalBalance)
	}

	if matches {
		return line.Amount, nil
	}
	return line.Amount.Neg(), nil
}

// CurrentBalance computes openingBalance plus the signed delta of every line.
// Lines need no particular order; summation is commutative so the caller may
// pass them exactly as fetched. An empty list yields the opening balance and
// zero-amount lines are valid no-ops.
func CurrentBalance(normalBalance domain.NormalBalance, openingBalance decimal.Decimal, lines []domain.EntryLine) (decimal.Decimal, error) {
	balance := openingBalance
	for _, line := range lines {
		signed, err := SignedAmount(line, normalBalance)
		if err != nil {
			return decimal.Zero, err
		}
		balance = balance.Add(signed)
	}
	return balance, nil
}

// DisplayAmount derives the per-line presentation value: positive when the
// line sits on the account's normal side, negative otherwise. The stored
// amount is never altered.
func DisplayAmount(line domain.EntryLine, normalBalance domain.NormalBalance) (decimal.Decimal, error) {
	return SignedAmount(line, normalBalance)
}

// PercentChange returns the change of current relative to opening, in percent.
// The opening balance is the base of the comparison; a zero opening balance
// yields zero instead of an undefined ratio.
func PercentChange(openingBalance, currentBalance decimal.Decimal) decimal.Decimal {
	if openingBalance.IsZero() {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return currentBalance.Sub(openingBalance).Div(openingBalance).Mul(hundred)
}

// ValidateEntryBalance checks that the lines of a journal entry balance to
// zero net, i.e. total debits equal total credits. The balance calculator
// itself never enforces this; it belongs to whoever creates entries.
func ValidateEntryBalance(lines []domain.EntryLine) error {
	if len(lines) < 2 {
		return errors.New("journal entry must have at least two lines")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if line.Amount.IsNegative() {
			return fmt.Errorf("%w: got %s for line %s", ErrInvalidAmount, line.Amount.String(), line.LineID)
		}
		switch line.Type {
		case domain.Debit:
			debits = debits.Add(line.Amount)
		case domain.Credit:
			credits = credits.Add(line.Amount)
		default:
			return fmt.Errorf("unknown entry line type %q for line %s", line.Type, line.LineID)
		}
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("entry lines do not balance: debits %s, credits %s", debits.String(), credits.String())
	}
	return nil
}
