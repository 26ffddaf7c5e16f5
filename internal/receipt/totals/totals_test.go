package totals

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallbiznis/recibo/internal/money"
	"github.com/smallbiznis/recibo/internal/receipt/domain"
)

func item(qty, price string) domain.ItemInput {
	return domain.ItemInput{
		Description: "x",
		Quantity:    decimal.RequireFromString(qty),
		UnitPrice:   decimal.RequireFromString(price),
	}
}

func TestComputeEmpty(t *testing.T) {
	got, err := Compute(nil)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(0), got.Subtotal)
	assert.Equal(t, money.Cents(0), got.Total)
	assert.Empty(t, got.Lines)
}

func TestComputeSumsRoundedLines(t *testing.T) {
	got, err := Compute([]domain.ItemInput{
		item("2", "100"),
		item("1", "150.50"),
		item("3", "0.335"),
	})
	require.NoError(t, err)
	assert.Equal(t, []money.Cents{20000, 15050, 101}, got.Lines)
	assert.Equal(t, money.Cents(35151), got.Subtotal)
	assert.Equal(t, got.Subtotal, got.Total)
}

func TestComputeRoundsEachLineBeforeSumming(t *testing.T) {
	// 0.005 rounds up per line; summing unrounded would give 0.01.
	got, err := Compute([]domain.ItemInput{item("1", "0.005"), item("1", "0.005")})
	require.NoError(t, err)
	assert.Equal(t, money.Cents(2), got.Total)
}

func TestComputeRejectsNegative(t *testing.T) {
	_, err := Compute([]domain.ItemInput{item("1", "-5")})
	assert.ErrorIs(t, err, money.ErrNegativeAmount)
	_, err = Compute([]domain.ItemInput{item("-1", "5")})
	assert.ErrorIs(t, err, money.ErrNegativeAmount)
}

func TestComputeStored(t *testing.T) {
	got, err := ComputeStored([]domain.LineItem{{
		Quantity:  decimal.NewFromInt(4),
		UnitPrice: decimal.RequireFromString("12.25"),
		Total:     1,
	}})
	require.NoError(t, err)
	assert.Equal(t, money.Cents(4900), got.Total)
}

func TestComputeRejectsOverflowingSum(t *testing.T) {
	// Each line fits in cents; their sum does not.
	_, err := Compute([]domain.ItemInput{
		item("1", "50000000000000000"),
		item("1", "50000000000000000"),
	})
	assert.ErrorIs(t, err, money.ErrInvalidAmount)

	got, err := Compute([]domain.ItemInput{item("1", "50000000000000000")})
	require.NoError(t, err)
	assert.Equal(t, money.Cents(5000000000000000000), got.Total)
}
