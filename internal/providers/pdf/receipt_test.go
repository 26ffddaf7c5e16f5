package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallbiznis/recibo/internal/config"
	"github.com/smallbiznis/recibo/internal/document"
	receiptdomain "github.com/smallbiznis/recibo/internal/receipt/domain"
	settingsdomain "github.com/smallbiznis/recibo/internal/settings/domain"
	"github.com/smallbiznis/recibo/internal/visibility"
)

func TestRenderReceipt(t *testing.T) {
	doc, err := document.Assemble(document.Input{
		Receipt: receiptdomain.Receipt{
			ReceiptNumber: "RECIBO-00000001",
			Date:          time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
			Status:        receiptdomain.StatusCompleted,
			CustomerName:  "Cliente",
			PaymentMethod: receiptdomain.PaymentTransfer,
			BankAccount:   "001-123",
			Items: []receiptdomain.LineItem{
				{Description: "Servicio", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("10.25")},
			},
		},
		Visibility: visibility.Defaults(),
		Profile:    settingsdomain.DefaultProfile(),
	})
	require.NoError(t, err)

	out, err := New().RenderReceipt(context.Background(), doc, config.DefaultLayout())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderReceiptEmptyDocument(t *testing.T) {
	_, err := New().RenderReceipt(context.Background(), document.Document{}, config.DefaultLayout())
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestPageSize(t *testing.T) {
	page := pageSize(config.DefaultLayout().Page)
	assert.InDelta(t, 203.2, page.width, 0.001)
	assert.InDelta(t, 139.7, page.height, 0.001)
	assert.InDelta(t, 6.35, page.margin, 0.001)

	page = pageSize(config.PageLayout{Width: "210mm", Height: "bogus", Margin: "1cm"})
	assert.InDelta(t, 210, page.width, 0.001)
	assert.InDelta(t, 139.7, page.height, 0.001)
	assert.InDelta(t, 10, page.margin, 0.001)
}

func TestDecodeDataImage(t *testing.T) {
	data, ext, ok := decodeDataImage("data:image/png;base64,aGVsbG8=")
	require.True(t, ok)
	assert.Equal(t, []byte("hello"), data)
	assert.Equal(t, "png", string(ext))

	_, _, ok = decodeDataImage("https://example.com/sig.png")
	assert.False(t, ok)
	_, _, ok = decodeDataImage("data:image/svg+xml;base64,aGVsbG8=")
	assert.False(t, ok)
}
