// Package totals derives line totals, subtotal and total for a receipt.
package totals

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/smallbiznis/recibo/internal/money"
	"github.com/smallbiznis/recibo/internal/receipt/domain"
)

type Totals struct {
	Lines    []money.Cents
	Subtotal money.Cents
	Total    money.Cents
}

// LineTotal is quantity times unit price, rounded to cents.
func LineTotal(quantity, unitPrice decimal.Decimal) (money.Cents, error) {
	if quantity.IsNegative() || unitPrice.IsNegative() {
		return 0, money.ErrNegativeAmount
	}
	return money.RoundToCents(quantity.Mul(unitPrice))
}

// Compute sums the rounded line totals in list order. Total equals subtotal;
// no tax or discount applies. An empty list yields zero. A sum beyond the
// range of money.Cents is rejected with money.ErrInvalidAmount.
func Compute(items []domain.ItemInput) (Totals, error) {
	out := Totals{Lines: make([]money.Cents, 0, len(items))}
	for _, item := range items {
		line, err := LineTotal(item.Quantity, item.UnitPrice)
		if err != nil {
			return Totals{}, err
		}
		if line > math.MaxInt64-out.Subtotal {
			return Totals{}, money.ErrInvalidAmount
		}
		out.Lines = append(out.Lines, line)
		out.Subtotal += line
	}
	out.Total = out.Subtotal
	return out, nil
}

// ComputeStored recomputes totals from persisted line items and ignores the
// stored per-line totals.
func ComputeStored(items []domain.LineItem) (Totals, error) {
	inputs := make([]domain.ItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, domain.ItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return Compute(inputs)
}
