// Package export produces spreadsheet downloads of the receipt list.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/recibo/internal/document"
	"github.com/smallbiznis/recibo/internal/observability/logger"
	"github.com/smallbiznis/recibo/internal/observability/metrics"
	receiptdomain "github.com/smallbiznis/recibo/internal/receipt/domain"
	"github.com/smallbiznis/recibo/internal/words"
	"github.com/smallbiznis/recibo/pkg/db/pagination"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	SheetName       = "Recibos"

	// MaxRows bounds a single export.
	MaxRows = 10000
)

var headers = []string{
	"Número",
	"Fecha",
	"Cliente",
	"NIT",
	"Estado",
	"Forma de pago",
	"Total",
	"Cantidad en letras",
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Receipts receiptdomain.Service
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	receipts receiptdomain.Service
	metrics  *metrics.Metrics
}

func NewService(p Params) *Service {
	return &Service{
		log:      p.Log.Named("export.service"),
		receipts: p.Receipts,
		metrics:  p.Metrics,
	}
}

// ReceiptsXLSX writes every receipt matching the list filters into one sheet.
// Skip and limit of req are ignored.
func (s *Service) ReceiptsXLSX(ctx context.Context, req receiptdomain.ListReceiptRequest) ([]byte, error) {
	start := time.Now()
	rows, err := s.collect(ctx, req)
	if err != nil {
		s.metrics.RecordRender(metrics.FormatXLSX, err)
		return nil, err
	}

	out, err := Workbook(rows)
	s.metrics.RecordRender(metrics.FormatXLSX, err)
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx, s.log).Info("export.xlsx.ok",
		zap.Int("rows", len(rows)),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)
	return out, nil
}

func (s *Service) collect(ctx context.Context, req receiptdomain.ListReceiptRequest) ([]receiptdomain.Receipt, error) {
	req.Pagination = pagination.Pagination{Skip: 0, Limit: pagination.MaxLimit}
	var out []receiptdomain.Receipt
	for {
		page, err := s.receipts.List(ctx, req)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Receipts...)
		if !page.HasMore || len(page.Receipts) == 0 || len(out) >= MaxRows {
			break
		}
		req.Skip += len(page.Receipts)
	}
	if len(out) > MaxRows {
		out = out[:MaxRows]
	}
	return out, nil
}

// Workbook renders receipts as an XLSX file.
func Workbook(receipts []receiptdomain.Receipt) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	currencyFormat := `"Q"#,##0.00`
	amount, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFormat})
	if err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(SheetName, "A1", "H1", bold); err != nil {
		return nil, err
	}

	for i, r := range receipts {
		row := i + 2
		text, _ := words.Render(r.Total)
		values := []any{
			r.ReceiptNumber,
			r.Date.Format("2006-01-02"),
			r.CustomerName,
			nitOrConsumer(r.CustomerNIT),
			r.Status.Label(),
			string(r.PaymentMethod),
			r.Total.Decimal().InexactFloat64(),
			text,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, err
			}
		}
		cell := fmt.Sprintf("G%d", row)
		if err := f.SetCellStyle(SheetName, cell, cell, amount); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 18)
	_ = f.SetColWidth(SheetName, "B", "B", 12)
	_ = f.SetColWidth(SheetName, "C", "C", 32)
	_ = f.SetColWidth(SheetName, "D", "F", 14)
	_ = f.SetColWidth(SheetName, "G", "G", 14)
	_ = f.SetColWidth(SheetName, "H", "H", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func nitOrConsumer(nit string) string {
	if nit == "" {
		return document.ConsumerNIT
	}
	return nit
}
