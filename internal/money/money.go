package money

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the quetzal glyph printed before every amount.
const Symbol = "Q"

var (
	ErrNegativeAmount = errors.New("negative_amount")
	ErrNonFinite      = errors.New("non_finite_amount")
	ErrInvalidAmount  = errors.New("invalid_amount")
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// Cents is a monetary amount expressed in hundredths of a quetzal.
type Cents int64

// RoundToCents rounds x half away from zero to the nearest cent.
// Negative amounts are rejected, never folded into their absolute value.
func RoundToCents(x decimal.Decimal) (Cents, error) {
	if x.IsNegative() {
		return 0, ErrNegativeAmount
	}
	shifted := x.Round(2).Shift(2)
	if shifted.GreaterThan(maxCents) {
		return 0, ErrInvalidAmount
	}
	return Cents(shifted.IntPart()), nil
}

// FromFloat converts a float64 into a decimal, rejecting NaN, infinities and negatives.
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, ErrNonFinite
	}
	if f < 0 {
		return decimal.Zero, ErrNegativeAmount
	}
	return decimal.NewFromFloat(f), nil
}

// Parse reads a plain decimal string such as "350.50".
func Parse(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	lower := strings.ToLower(value)
	if strings.Contains(lower, "nan") || strings.Contains(lower, "inf") {
		return decimal.Zero, ErrNonFinite
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return d, nil
}

// FormatCurrency rounds x to cents and renders it with the quetzal glyph.
func FormatCurrency(x decimal.Decimal) (string, error) {
	c, err := RoundToCents(x)
	if err != nil {
		return "", err
	}
	return c.Format(), nil
}

// Decimal returns the amount as a decimal with two places.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Split returns the whole quetzales and the remaining cents (0-99).
func (c Cents) Split() (int64, int64) {
	return int64(c) / 100, int64(c) % 100
}

// String renders the amount as a bare two-decimal number, e.g. "350.50".
func (c Cents) String() string {
	whole, cents := c.Split()
	return strconv.FormatInt(whole, 10) + "." + twoDigits(cents)
}

// Format renders the amount the way receipts display it: "Q1,234.56".
func (c Cents) Format() string {
	whole, cents := c.Split()
	return Symbol + group(whole) + "." + twoDigits(cents)
}

func group(n int64) string {
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
