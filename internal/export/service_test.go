package export

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/smallbiznis/recibo/internal/money"
	receiptdomain "github.com/smallbiznis/recibo/internal/receipt/domain"
	"github.com/smallbiznis/recibo/pkg/db/pagination"
)

type pagedReceipts struct {
	receiptdomain.Service
	all   []receiptdomain.Receipt
	calls int
}

func (p *pagedReceipts) List(_ context.Context, req receiptdomain.ListReceiptRequest) (receiptdomain.ListReceiptResponse, error) {
	p.calls++
	page := req.Pagination.Normalize()
	end := page.Skip + page.Limit
	if end > len(p.all) {
		end = len(p.all)
	}
	items := p.all[page.Skip:end]
	return receiptdomain.ListReceiptResponse{
		PageInfo: pagination.BuildPageInfo(page, len(items), int64(len(p.all))),
		Receipts: items,
	}, nil
}

func receipts(n int) []receiptdomain.Receipt {
	out := make([]receiptdomain.Receipt, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, receiptdomain.Receipt{
			ReceiptNumber: fmt.Sprintf("RECIBO-%08d", i),
			Date:          time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
			Status:        receiptdomain.StatusPaid,
			CustomerName:  "Cliente",
			PaymentMethod: receiptdomain.PaymentCash,
			Total:         money.Cents(35050),
		})
	}
	return out
}

func TestWorkbook(t *testing.T) {
	data, err := Workbook(receipts(1))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, headers, rows[0])
	assert.Equal(t, "RECIBO-00000001", rows[1][0])
	assert.Equal(t, "2026-10-14", rows[1][1])
	assert.Equal(t, "CF", rows[1][3])
	assert.Equal(t, "Pagado", rows[1][4])
	assert.Equal(t, "Efectivo", rows[1][5])
	assert.Equal(t, "TRESCIENTOS CINCUENTA QUETZALES CON 50/100", rows[1][7])

	raw, err := f.GetCellValue(SheetName, "G2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "350.5", raw)
}

func TestReceiptsXLSXPagesThroughList(t *testing.T) {
	src := &pagedReceipts{all: receipts(pagination.MaxLimit + 3)}
	svc := NewService(Params{Log: zap.NewNop(), Receipts: src})

	data, err := svc.ReceiptsXLSX(context.Background(), receiptdomain.ListReceiptRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, pagination.MaxLimit+3+1)
}
