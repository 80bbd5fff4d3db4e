package accounting_test

import (
	"math/rand"
	"testing"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	"github.com/dayatwork/sismo-v2-sub002/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(t domain.EntryLineType, amount int64) domain.EntryLine {
	return domain.EntryLine{
		LineID: "line-test",
		Type:   t,
		Amount: decimal.NewFromInt(amount),
	}
}

func TestCurrentBalance_DebitNormalAccount(t *testing.T) {
	lines := []domain.EntryLine{
		line(domain.Debit, 500),
		line(domain.Credit, 200),
	}

	balance, err := accounting.CurrentBalance(domain.NormalDebit, decimal.NewFromInt(1000), lines)

	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(1300)), "got %s", balance)
}

func TestCurrentBalance_CreditNormalAccount(t *testing.T) {
	lines := []domain.EntryLine{
		line(domain.Debit, 300),
		line(domain.Credit, 700),
	}

	balance, err := accounting.CurrentBalance(domain.NormalCredit, decimal.Zero, lines)

	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(400)), "got %s", balance)
}

func TestCurrentBalance_EmptyLinesYieldOpeningBalance(t *testing.T) {
	opening := decimal.NewFromInt(-2500)

	for _, nb := range []domain.NormalBalance{domain.NormalDebit, domain.NormalCredit} {
		balance, err := accounting.CurrentBalance(nb, opening, nil)
		require.NoError(t, err)
		assert.True(t, balance.Equal(opening))
	}
}

func TestCurrentBalance_ZeroAmountLineIsNoOp(t *testing.T) {
	opening := decimal.NewFromInt(1000)
	withZero := []domain.EntryLine{line(domain.Debit, 500), line(domain.Credit, 0)}
	withoutZero := []domain.EntryLine{line(domain.Debit, 500)}

	a, err := accounting.CurrentBalance(domain.NormalDebit, opening, withZero)
	require.NoError(t, err)
	b, err := accounting.CurrentBalance(domain.NormalDebit, opening, withoutZero)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestCurrentBalance_NegativeAmountRejected(t *testing.T) {
	lines := []domain.EntryLine{line(domain.Debit, -1)}

	for _, nb := range []domain.NormalBalance{domain.NormalDebit, domain.NormalCredit} {
		_, err := accounting.CurrentBalance(nb, decimal.Zero, lines)
		assert.ErrorIs(t, err, accounting.ErrInvalidAmount)
	}
}

func TestCurrentBalance_InvalidNormalBalanceRejected(t *testing.T) {
	lines := []domain.EntryLine{line(domain.Debit, 100)}

	_, err := accounting.CurrentBalance(domain.NormalBalance("SIDEWAYS"), decimal.Zero, lines)
	assert.ErrorIs(t, err, accounting.ErrInvalidNormalBalance)
}

func TestCurrentBalance_CommutativeOverLineOrder(t *testing.T) {
	lines := []domain.EntryLine{
		line(domain.Debit, 125),
		line(domain.Credit, 75),
		line(domain.Debit, 10000),
		line(domain.Credit, 9999),
		line(domain.Debit, 1),
	}
	opening := decimal.NewFromInt(42)

	want, err := accounting.CurrentBalance(domain.NormalDebit, opening, lines)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]domain.EntryLine, len(lines))
		copy(shuffled, lines)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got, err := accounting.CurrentBalance(domain.NormalDebit, opening, shuffled)
		require.NoError(t, err)
		assert.True(t, got.Equal(want), "permutation %d changed result: %s vs %s", i, got, want)
	}
}

func TestSignedAmount_SignConvention(t *testing.T) {
	tests := []struct {
		name   string
		nb     domain.NormalBalance
		lt     domain.EntryLineType
		amount int64
		want   int64
	}{
		{"debit to debit-normal", domain.NormalDebit, domain.Debit, 100, 100},
		{"credit to debit-normal", domain.NormalDebit, domain.Credit, 100, -100},
		{"credit to credit-normal", domain.NormalCredit, domain.Credit, 100, 100},
		{"debit to credit-normal", domain.NormalCredit, domain.Debit, 100, -100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(line(tc.lt, tc.amount), tc.nb)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromInt(tc.want)), "got %s", got)
		})
	}
}

func TestDisplayAmount_MatchesNormalSideSign(t *testing.T) {
	got, err := accounting.DisplayAmount(line(domain.Credit, 250), domain.NormalDebit)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(-250)))

	got, err = accounting.DisplayAmount(line(domain.Credit, 250), domain.NormalCredit)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(250)))
}

func TestPercentChange(t *testing.T) {
	got := accounting.PercentChange(decimal.NewFromInt(1000), decimal.NewFromInt(1300))
	assert.True(t, got.Equal(decimal.NewFromInt(30)), "got %s", got)

	got = accounting.PercentChange(decimal.NewFromInt(1000), decimal.NewFromInt(500))
	assert.True(t, got.Equal(decimal.NewFromInt(-50)), "got %s", got)

	// Zero opening balance gives a defined result instead of a division error.
	got = accounting.PercentChange(decimal.Zero, decimal.NewFromInt(500))
	assert.True(t, got.IsZero())
}

func TestValidateEntryBalance(t *testing.T) {
	balanced := []domain.EntryLine{line(domain.Debit, 500), line(domain.Credit, 500)}
	assert.NoError(t, accounting.ValidateEntryBalance(balanced))

	unbalanced := []domain.EntryLine{line(domain.Debit, 500), line(domain.Credit, 300)}
	assert.Error(t, accounting.ValidateEntryBalance(unbalanced))

	tooFew := []domain.EntryLine{line(domain.Debit, 500)}
	assert.Error(t, accounting.ValidateEntryBalance(tooFew))

	negative := []domain.EntryLine{line(domain.Debit, -500), line(domain.Credit, -500)}
	assert.ErrorIs(t, accounting.ValidateEntryBalance(negative), accounting.ErrInvalidAmount)
}
