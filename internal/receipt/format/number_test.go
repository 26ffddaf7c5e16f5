package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptNumber(t *testing.T) {
	issued := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	got, err := ReceiptNumber(DefaultNumberTemplate, issued, 1)
	require.NoError(t, err)
	assert.Equal(t, "RECIBO-00000001", got)

	got, err = ReceiptNumber(DefaultNumberTemplate, issued, 123456789)
	require.NoError(t, err)
	assert.Equal(t, "RECIBO-123456789", got)

	got, err = ReceiptNumber("R{YY}{MM}-{SEQ4}", issued, 42)
	require.NoError(t, err)
	assert.Equal(t, "R2610-0042", got)

	got, err = ReceiptNumber("{YYYY}/{DD}/{SEQ}", issued, 7)
	require.NoError(t, err)
	assert.Equal(t, "2026/14/7", got)
}

func TestReceiptNumberErrors(t *testing.T) {
	_, err := ReceiptNumber("", time.Now(), 1)
	assert.ErrorIs(t, err, ErrEmptyTemplate)

	_, err = ReceiptNumber(DefaultNumberTemplate, time.Now(), 0)
	assert.ErrorIs(t, err, ErrInvalidSequence)

	_, err = ReceiptNumber("RECIBO-{NOPE}", time.Now(), 1)
	assert.Error(t, err)
}

func TestValidateTemplate(t *testing.T) {
	assert.NoError(t, ValidateTemplate(DefaultNumberTemplate))
	assert.Error(t, ValidateTemplate("RECIBO-{YYYY}"))
}
