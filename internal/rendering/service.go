// Package rendering loads a receipt and the current settings, assembles the
// document once and projects it to the requested output.
package rendering

import (
	"context"

	"github.com/gosimple/slug"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/recibo/internal/clock"
	"github.com/smallbiznis/recibo/internal/config"
	"github.com/smallbiznis/recibo/internal/document"
	"github.com/smallbiznis/recibo/internal/observability/logger"
	"github.com/smallbiznis/recibo/internal/observability/metrics"
	"github.com/smallbiznis/recibo/internal/observability/tracing"
	"github.com/smallbiznis/recibo/internal/printing"
	"github.com/smallbiznis/recibo/internal/providers/pdf"
	"github.com/smallbiznis/recibo/internal/render"
	receiptdomain "github.com/smallbiznis/recibo/internal/receipt/domain"
	settingsdomain "github.com/smallbiznis/recibo/internal/settings/domain"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	Receipts receiptdomain.Service
	Settings settingsdomain.Service
	Layout   *config.LayoutHolder
	HTML     *render.HTMLRenderer
	PDF      pdf.Provider
	Printing *printing.Service
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	clock    clock.Clock
	receipts receiptdomain.Service
	settings settingsdomain.Service
	layout   *config.LayoutHolder
	html     *render.HTMLRenderer
	pdf      pdf.Provider
	printing *printing.Service
	metrics  *metrics.Metrics
}

func New(p Params) *Service {
	return &Service{
		log:      p.Log.Named("rendering.service"),
		clock:    p.Clock,
		receipts: p.Receipts,
		settings: p.Settings,
		layout:   p.Layout,
		html:     p.HTML,
		pdf:      p.PDF,
		printing: p.Printing,
		metrics:  p.Metrics,
	}
}

// File is a rendered download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// PreviewRequest is an unsaved receipt body edited in the browser.
type PreviewRequest struct {
	receiptdomain.Content
	Status receiptdomain.Status `json:"status"`
	Title  string               `json:"title"`
}

type PreviewResponse struct {
	Document document.Document `json:"document"`
	HTML     string            `json:"html"`
}

// Document assembles a stored receipt.
func (s *Service) Document(ctx context.Context, id string) (document.Document, error) {
	ctx, span := tracing.Start(ctx, "rendering.document", attribute.String("receipt.id", id))
	doc, err := s.documentFor(ctx, id)
	tracing.End(span, err)
	s.metrics.RecordRender(metrics.FormatJSON, err)
	return doc, err
}

// Screen renders the on-screen preview fragment of a stored receipt.
func (s *Service) Screen(ctx context.Context, id string) (string, error) {
	ctx, span := tracing.Start(ctx, "rendering.screen", attribute.String("receipt.id", id))
	out, err := s.screen(ctx, id)
	tracing.End(span, err)
	s.metrics.RecordRender(metrics.FormatScreen, err)
	return out, err
}

// Print renders the standalone print page of a stored receipt.
func (s *Service) Print(ctx context.Context, id string) (string, error) {
	ctx, span := tracing.Start(ctx, "rendering.print", attribute.String("receipt.id", id))
	doc, out, err := s.print(ctx, id)
	if err == nil {
		span.SetAttributes(attribute.String("receipt.number", doc.ReceiptNumber))
	}
	tracing.End(span, err)
	s.metrics.RecordRender(metrics.FormatPrint, err)
	return out, err
}

func (s *Service) PDF(ctx context.Context, id string) (File, error) {
	ctx, span := tracing.Start(ctx, "rendering.pdf", attribute.String("receipt.id", id))
	file, err := s.renderPDF(ctx, id)
	tracing.End(span, err)
	s.metrics.RecordRender(metrics.FormatPDF, err)
	return file, err
}

// Dispatch sends the print projection to the configured print surface.
func (s *Service) Dispatch(ctx context.Context, id string) (printing.Result, error) {
	doc, out, err := s.print(ctx, id)
	s.metrics.RecordRender(metrics.FormatPrint, err)
	if err != nil {
		return printing.Result{}, err
	}
	return s.printing.Dispatch(ctx, doc.ReceiptNumber, render.ContentTypeHTML, []byte(out))
}

// Preview assembles an unsaved receipt with the number it would receive.
func (s *Service) Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error) {
	ctx, span := tracing.Start(ctx, "rendering.preview")
	var err error
	defer func() { tracing.End(span, err) }()

	status := req.Status
	if status == "" {
		status = receiptdomain.StatusCompleted
	}
	if !status.Valid() {
		err = receiptdomain.ErrInvalidStatus
		return PreviewResponse{}, err
	}

	content := req.Content.Normalize()
	date := s.clock.Now()
	if content.Date != nil && !content.Date.IsZero() {
		date = *content.Date
	}

	number := ""
	if next, nextErr := s.receipts.NextNumber(ctx); nextErr == nil {
		number = next.ReceiptNumber
	} else {
		logger.WithContext(ctx, s.log).Warn("next receipt number unavailable for preview", zap.Error(nextErr))
	}

	var (
		view settingsdomain.View
		doc  document.Document
		html string
	)
	if view, err = s.settings.Get(ctx); err != nil {
		return PreviewResponse{}, err
	}
	draft := content.Draft(number, date, status)
	if doc, err = s.assemble(draft, view, req.Title); err != nil {
		s.metrics.RecordRender(metrics.FormatScreen, err)
		return PreviewResponse{}, err
	}
	html, err = s.html.RenderScreen(doc)
	s.metrics.RecordRender(metrics.FormatScreen, err)
	if err != nil {
		return PreviewResponse{}, err
	}
	return PreviewResponse{Document: doc, HTML: html}, nil
}

func (s *Service) screen(ctx context.Context, id string) (string, error) {
	doc, err := s.documentFor(ctx, id)
	if err != nil {
		return "", err
	}
	return s.html.RenderScreen(doc)
}

func (s *Service) print(ctx context.Context, id string) (document.Document, string, error) {
	doc, err := s.documentFor(ctx, id)
	if err != nil {
		return document.Document{}, "", err
	}
	out, err := s.html.RenderPrint(doc, render.PageFromLayout(s.layout.Get().Page))
	return doc, out, err
}

func (s *Service) renderPDF(ctx context.Context, id string) (File, error) {
	doc, err := s.documentFor(ctx, id)
	if err != nil {
		return File{}, err
	}
	data, err := s.pdf.RenderReceipt(ctx, doc, s.layout.Get())
	if err != nil {
		return File{}, err
	}
	return File{Name: FileName(doc.ReceiptNumber, "pdf"), ContentType: pdf.ContentType, Data: data}, nil
}

func (s *Service) documentFor(ctx context.Context, id string) (document.Document, error) {
	receipt, err := s.receipts.Get(ctx, id)
	if err != nil {
		return document.Document{}, err
	}
	view, err := s.settings.Get(ctx)
	if err != nil {
		return document.Document{}, err
	}
	return s.assemble(receipt, view, "")
}

func (s *Service) assemble(receipt receiptdomain.Receipt, view settingsdomain.View, title string) (document.Document, error) {
	doc, err := document.Assemble(document.Input{
		Receipt:       receipt,
		Visibility:    view.FieldVisibility,
		Profile:       view.Profile,
		TitleOverride: title,
		FooterText:    s.layout.Get().Footer.Text,
	})
	if err != nil {
		return document.Document{}, err
	}
	if w := doc.Section(document.KindAmountInWords).Words; w != nil && w.Overflow {
		s.metrics.RecordWordsOverflow()
		s.log.Warn("amount exceeds words range", zap.String("receipt_number", doc.ReceiptNumber), zap.String("total", doc.Total.String()))
	}
	return doc, nil
}

// FileName is the download name for a receipt, e.g. "recibo-00000042.pdf".
func FileName(receiptNumber, ext string) string {
	base := slug.Make(receiptNumber)
	if base == "" {
		base = "recibo"
	}
	return base + "." + ext
}
