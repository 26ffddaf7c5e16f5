// Package words spells out quetzal amounts in Spanish the way printed
// receipts state them, e.g. "CIENTO UNO QUETZALES CON 50/100".
package words

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smallbiznis/recibo/internal/money"
)

const (
	CurrencySingular = "QUETZAL"
	CurrencyPlural   = "QUETZALES"

	// LimitExceeded is printed instead of words when the amount cannot be spelled.
	LimitExceeded = "CANTIDAD EXCEDE LÍMITE"

	// MaxInteger is the largest whole-quetzal part that can be spelled.
	MaxInteger int64 = 999999
)

var ErrRangeExceeded = errors.New("amount_range_exceeded")

var (
	units    = [...]string{"", "UNO", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO", "NUEVE"}
	teens    = [...]string{"DIEZ", "ONCE", "DOCE", "TRECE", "CATORCE", "QUINCE", "DIECISÉIS", "DIECISIETE", "DIECIOCHO", "DIECINUEVE"}
	tens     = [...]string{"", "", "VEINTE", "TREINTA", "CUARENTA", "CINCUENTA", "SESENTA", "SETENTA", "OCHENTA", "NOVENTA"}
	hundreds = [...]string{"", "CIENTO", "DOSCIENTOS", "TRESCIENTOS", "CUATROCIENTOS", "QUINIENTOS", "SEISCIENTOS", "SETECIENTOS", "OCHOCIENTOS", "NOVECIENTOS"}
)

// Convert spells a cent amount: "<integer words> <QUETZAL|QUETZALES> CON <cc>/100".
func Convert(amount money.Cents) (string, error) {
	if amount < 0 {
		return "", money.ErrNegativeAmount
	}
	whole, cents := amount.Split()
	integer, err := Integer(whole)
	if err != nil {
		return "", err
	}
	currency := CurrencyPlural
	if whole == 1 {
		currency = CurrencySingular
	}
	return fmt.Sprintf("%s %s CON %02d/100", integer, currency, cents), nil
}

// FromDecimal rounds x to cents before spelling it.
func FromDecimal(x decimal.Decimal) (string, error) {
	c, err := money.RoundToCents(x)
	if err != nil {
		return "", err
	}
	return Convert(c)
}

// Render is Convert for display surfaces: an amount out of range yields
// LimitExceeded and overflow is reported through the second return value.
func Render(amount money.Cents) (string, bool) {
	text, err := Convert(amount)
	if err != nil {
		return LimitExceeded, true
	}
	return text, false
}

// Integer spells the whole-quetzal part, 0 through MaxInteger.
func Integer(n int64) (string, error) {
	switch {
	case n < 0:
		return "", money.ErrNegativeAmount
	case n > MaxInteger:
		return "", ErrRangeExceeded
	case n == 0:
		return "CERO", nil
	}
	return thousandsWords(int(n)), nil
}

func thousandsWords(n int) string {
	if n < 1000 {
		return hundredsWords(n)
	}
	thousand, rest := n/1000, n%1000

	// No apocope before MIL: 21000 is VEINTIUNO MIL, 31000 TREINTA Y UNO MIL.
	// Issued receipts carry this wording; keep it stable.
	parts := make([]string, 0, 3)
	if thousand == 1 {
		parts = append(parts, "MIL")
	} else {
		parts = append(parts, hundredsWords(thousand), "MIL")
	}
	if rest > 0 {
		parts = append(parts, hundredsWords(rest))
	}
	return strings.Join(parts, " ")
}

func hundredsWords(n int) string {
	if n == 100 {
		return "CIEN"
	}
	h, rest := n/100, n%100
	switch {
	case h == 0:
		return tensWords(rest)
	case rest == 0:
		return hundreds[h]
	default:
		return hundreds[h] + " " + tensWords(rest)
	}
}

func tensWords(n int) string {
	switch {
	case n < 10:
		return units[n]
	case n < 20:
		return teens[n-10]
	}
	t, u := n/10, n%10
	switch {
	case u == 0:
		return tens[t]
	case t == 2:
		return "VEINTI" + units[u]
	default:
		return tens[t] + " Y " + units[u]
	}
}
