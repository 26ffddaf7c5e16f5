package pdf

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	marotorow "github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/smallbiznis/recibo/internal/config"
	"github.com/smallbiznis/recibo/internal/document"
)

const ContentType = "application/pdf"

var ErrEmptyDocument = errors.New("empty_document")

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) RenderReceipt(ctx context.Context, doc document.Document, layout config.Layout) ([]byte, error) {
	if len(doc.PresentSections()) == 0 {
		return nil, ErrEmptyDocument
	}

	page := pageSize(layout.Page)
	builder := marotoconfig.NewBuilder().
		WithDimensions(page.width, page.height).
		WithLeftMargin(page.margin).
		WithTopMargin(page.margin).
		WithRightMargin(page.margin)
	if pattern := strings.TrimSpace(layout.PDF.PageNumberPattern); pattern != "" {
		builder = builder.WithPageNumber(props.PageNumber{
			Pattern: pattern,
			Place:   props.RightBottom,
			Size:    7,
		})
	}

	m := maroto.New(builder.Build())
	for _, s := range doc.PresentSections() {
		m.AddRows(sectionRows(s)...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return out.GetBytes(), nil
}

var (
	small  = props.Text{Size: 8}
	label  = props.Text{Size: 8, Style: fontstyle.Bold}
	right  = props.Text{Size: 8, Align: align.Right}
	bold   = props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	center = props.Text{Size: 8, Align: align.Center}
)

func sectionRows(s document.Section) []core.Row {
	switch s.Kind {
	case document.KindHeader:
		return headerRows(s.Header)
	case document.KindCustomerInfo:
		return customerRows(s.Customer)
	case document.KindLineItems:
		return itemRows(s.Items)
	case document.KindTotals:
		return []core.Row{
			row(5, col.New(8), text.NewCol(2, "Subtotal:", label), text.NewCol(2, s.Totals.Subtotal, right)),
			row(6, col.New(8), text.NewCol(2, "TOTAL:", props.Text{Size: 10, Style: fontstyle.Bold}),
				text.NewCol(2, s.Totals.Total, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right})),
		}
	case document.KindAmountInWords:
		return []core.Row{row(6, text.NewCol(12, "Cantidad en letras: "+s.Words.Text, small))}
	case document.KindConcept, document.KindNotes:
		return []core.Row{row(6, text.NewCol(12, s.Text.Label+": "+s.Text.Body, small))}
	case document.KindPayment:
		return paymentRows(s.Payment)
	case document.KindSignature:
		return signatureRows(s.Signature)
	case document.KindAuthorizedSignature:
		return []core.Row{
			row(10, col.New(12)),
			row(2, col.New(6), line.NewCol(6, props.Line{Thickness: 0.3})),
			row(4, col.New(6), text.NewCol(6, s.Authorized.Label, center)),
		}
	case document.KindFooter:
		return []core.Row{row(8, text.NewCol(12, s.Footer.Text, props.Text{Size: 7, Align: align.Center, Top: 3}))}
	}
	return nil
}

func headerRows(h *document.Header) []core.Row {
	left := col.New(8).Add(text.New(h.Title, props.Text{Size: 13, Style: fontstyle.Bold}))
	top := 6.0
	if h.CompanyName != "" {
		left.Add(text.New(h.CompanyName, props.Text{Size: 9, Style: fontstyle.Bold, Top: top}))
		top += 4
	}
	for _, info := range h.InfoLines {
		left.Add(text.New(info, props.Text{Size: 7, Top: top}))
		top += 3.5
	}

	meta := col.New(4)
	if h.ReceiptNumber != "" {
		meta.Add(text.New("No. "+h.ReceiptNumber, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}))
	}
	meta.Add(text.New(h.Date, props.Text{Size: 8, Align: align.Right, Top: 5}))
	if h.StatusLabel != "" {
		meta.Add(text.New(h.StatusLabel, props.Text{Size: 7, Align: align.Right, Top: 9}))
	}

	height := top + 2
	if height < 14 {
		height = 14
	}
	return []core.Row{
		row(height, left, meta),
		row(2, line.NewCol(12, props.Line{Thickness: 0.5})),
	}
}

func customerRows(c *document.Customer) []core.Row {
	rows := make([]core.Row, 0, (len(c.Fields)+1)/2)
	for i := 0; i < len(c.Fields); i += 2 {
		cols := []core.Col{text.NewCol(6, c.Fields[i].Label+": "+c.Fields[i].Value, small)}
		if i+1 < len(c.Fields) {
			cols = append(cols, text.NewCol(6, c.Fields[i+1].Label+": "+c.Fields[i+1].Value, small))
		} else {
			cols = append(cols, col.New(6))
		}
		rows = append(rows, row(5, cols...))
	}
	return rows
}

func itemRows(items *document.Items) []core.Row {
	rows := []core.Row{
		row(5,
			text.NewCol(6, "Descripción", label),
			text.NewCol(2, "Cant.", bold),
			text.NewCol(2, "P. Unit.", bold),
			text.NewCol(2, "Total", bold),
		),
		row(1, line.NewCol(12, props.Line{Thickness: 0.3})),
	}
	for _, r := range items.Rows {
		rows = append(rows, row(5,
			text.NewCol(6, r.Description, small),
			text.NewCol(2, r.Quantity, right),
			text.NewCol(2, r.UnitPrice, right),
			text.NewCol(2, r.Total, right),
		))
	}
	return rows
}

func paymentRows(p *document.Payment) []core.Row {
	cols := []core.Col{text.NewCol(4, "Forma de pago: "+p.Method, small)}
	switch {
	case p.CheckNumber != "":
		cols = append(cols, text.NewCol(8, "No. de cheque: "+p.CheckNumber, small))
	case p.BankAccount != "":
		cols = append(cols, text.NewCol(8, "Cuenta bancaria: "+p.BankAccount, small))
	default:
		cols = append(cols, col.New(8))
	}
	return []core.Row{row(5, cols...)}
}

func signatureRows(sig *document.Signature) []core.Row {
	rows := []core.Row{}
	if data, ext, ok := decodeDataImage(sig.ImageRef); ok {
		rows = append(rows, row(14, image.NewFromBytesCol(6, data, ext, props.Rect{Center: true, Percent: 90}), col.New(6)))
	} else {
		rows = append(rows, row(10, col.New(12)))
	}
	rows = append(rows,
		row(2, line.NewCol(6, props.Line{Thickness: 0.3}), col.New(6)),
		row(4, text.NewCol(6, sig.Label, center), col.New(6)),
	)
	if sig.ReceivedBy != "" {
		rows = append(rows, row(4, text.NewCol(6, sig.ReceivedBy, center), col.New(6)))
	}
	return rows
}

func row(height float64, cols ...core.Col) core.Row {
	return marotorow.New(height).Add(cols...)
}

// decodeDataImage accepts png and jpeg data URLs. Remote references are
// not fetched.
func decodeDataImage(ref string) ([]byte, extension.Type, bool) {
	meta, payload, ok := strings.Cut(strings.TrimSpace(ref), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, "", false
	}
	var ext extension.Type
	switch strings.TrimSuffix(meta, ";base64") {
	case "data:image/png":
		ext = extension.Png
	case "data:image/jpeg", "data:image/jpg":
		ext = extension.Jpeg
	default:
		return nil, "", false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return nil, "", false
	}
	return data, ext, true
}
