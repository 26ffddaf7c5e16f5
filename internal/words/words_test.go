package words

import (
	"regexp"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallbiznis/recibo/internal/money"
)

func TestConvertOracle(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "CERO QUETZALES CON 00/100"},
		{"0.05", "CERO QUETZALES CON 05/100"},
		{"1", "UNO QUETZAL CON 00/100"},
		{"1.50", "UNO QUETZAL CON 50/100"},
		{"2", "DOS QUETZALES CON 00/100"},
		{"16", "DIECISÉIS QUETZALES CON 00/100"},
		{"20", "VEINTE QUETZALES CON 00/100"},
		{"21", "VEINTIUNO QUETZALES CON 00/100"},
		{"35", "TREINTA Y CINCO QUETZALES CON 00/100"},
		{"100", "CIEN QUETZALES CON 00/100"},
		{"101", "CIENTO UNO QUETZALES CON 00/100"},
		{"200", "DOSCIENTOS QUETZALES CON 00/100"},
		{"350.00", "TRESCIENTOS CINCUENTA QUETZALES CON 00/100"},
		{"350.50", "TRESCIENTOS CINCUENTA QUETZALES CON 50/100"},
		{"999", "NOVECIENTOS NOVENTA Y NUEVE QUETZALES CON 00/100"},
		{"1000", "MIL QUETZALES CON 00/100"},
		{"1001", "MIL UNO QUETZALES CON 00/100"},
		{"1500.75", "MIL QUINIENTOS QUETZALES CON 75/100"},
		{"2000", "DOS MIL QUETZALES CON 00/100"},
		{"21000", "VEINTIUNO MIL QUETZALES CON 00/100"},
		{"31000", "TREINTA Y UNO MIL QUETZALES CON 00/100"},
		{"100000", "CIEN MIL QUETZALES CON 00/100"},
		{"999999", "NOVECIENTOS NOVENTA Y NUEVE MIL NOVECIENTOS NOVENTA Y NUEVE QUETZALES CON 00/100"},
		{"999999.99", "NOVECIENTOS NOVENTA Y NUEVE MIL NOVECIENTOS NOVENTA Y NUEVE QUETZALES CON 99/100"},
	}
	for _, tc := range cases {
		t.Run(tc.amount, func(t *testing.T) {
			got, err := FromDecimal(decimal.RequireFromString(tc.amount))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConvertRangeExceeded(t *testing.T) {
	_, err := FromDecimal(decimal.NewFromInt(1000000))
	assert.ErrorIs(t, err, ErrRangeExceeded)

	text, overflow := Render(money.Cents(100000000))
	assert.True(t, overflow)
	assert.Equal(t, LimitExceeded, text)

	text, overflow = Render(money.Cents(100))
	assert.False(t, overflow)
	assert.Equal(t, "UNO QUETZAL CON 00/100", text)
}

func TestConvertRejectsNegative(t *testing.T) {
	_, err := Convert(money.Cents(-1))
	assert.ErrorIs(t, err, money.ErrNegativeAmount)
	_, err = FromDecimal(decimal.RequireFromString("-5"))
	assert.ErrorIs(t, err, money.ErrNegativeAmount)
}

func TestConvertRoundsToCents(t *testing.T) {
	got, err := FromDecimal(decimal.RequireFromString("10.005"))
	require.NoError(t, err)
	assert.Equal(t, "DIEZ QUETZALES CON 01/100", got)
}

var shape = regexp.MustCompile(`^[A-ZÉ]+( [A-ZÉ]+)* (QUETZAL|QUETZALES) CON \d{2}/100$`)

func TestIntegerWholeRange(t *testing.T) {
	for n := int64(0); n <= MaxInteger; n++ {
		got, err := Convert(money.Cents(n * 100))
		if err != nil {
			t.Fatalf("convert %d: %v", n, err)
		}
		if !shape.MatchString(got) {
			t.Fatalf("convert %d: unexpected shape %q", n, got)
		}
		if strings.Contains(got, "  ") || strings.HasPrefix(got, "UNO MIL") || strings.Contains(got, "CIENTO MIL") {
			t.Fatalf("convert %d: malformed %q", n, got)
		}
		if singular := strings.Contains(got, " QUETZAL CON"); singular != (n == 1) {
			t.Fatalf("convert %d: wrong currency number in %q", n, got)
		}
	}
}
