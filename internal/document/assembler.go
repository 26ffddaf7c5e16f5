// Package document assembles a receipt into an ordered list of sections that
// the screen, print and PDF renderers all project from.
package document

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smallbiznis/recibo/internal/money"
	receiptdomain "github.com/smallbiznis/recibo/internal/receipt/domain"
	"github.com/smallbiznis/recibo/internal/receipt/totals"
	settingsdomain "github.com/smallbiznis/recibo/internal/settings/domain"
	"github.com/smallbiznis/recibo/internal/visibility"
	"github.com/smallbiznis/recibo/internal/words"
)

const (
	FallbackTitle       = "RECIBO"
	DefaultFooter       = "Gracias por su preferencia"
	ConsumerNIT         = "CF"
	CustomerSignLabel   = "Firma del Cliente"
	AuthorizedSignLabel = "Firma Autorizada"
)

type Input struct {
	Receipt    receiptdomain.Receipt
	Visibility visibility.Set
	Profile    settingsdomain.CompanyProfile

	// TitleOverride replaces Profile.ReceiptTitle when non-empty.
	TitleOverride string
	FooterText    string
}

// Assemble builds the document. It fails only on amounts rejected by the
// money boundary; an out-of-range total is reported inside the words section.
func Assemble(in Input) (Document, error) {
	sums, err := totals.ComputeStored(in.Receipt.Items)
	if err != nil {
		return Document{}, err
	}

	r := in.Receipt
	vis := in.Visibility

	doc := Document{
		ReceiptNumber: r.ReceiptNumber,
		Total:         sums.Total,
		Sections:      make([]Section, 0, len(Order)),
	}
	if !r.Date.IsZero() {
		doc.ISODate = r.Date.Format("2006-01-02")
	}

	for _, kind := range Order {
		s := Section{Kind: kind}
		switch kind {
		case KindHeader:
			s.Header = header(in)
		case KindCustomerInfo:
			s.Customer = customer(r, vis, in.Profile)
		case KindLineItems:
			if vis.Visible(visibility.LineItems) && vis.Visible(visibility.LineItemsInPrint) && len(r.Items) > 0 {
				s.Items = items(r.Items, sums)
			}
		case KindTotals:
			s.Totals = &Totals{
				Subtotal:      sums.Subtotal.Format(),
				Total:         sums.Total.Format(),
				SubtotalCents: sums.Subtotal,
				TotalCents:    sums.Total,
			}
		case KindAmountInWords:
			if vis.Visible(visibility.AmountInWords) {
				text, overflow := words.Render(sums.Total)
				s.Words = &Words{Text: text, Overflow: overflow}
			}
		case KindConcept:
			if vis.Visible(visibility.Concept) && strings.TrimSpace(r.Concept) != "" {
				s.Text = &Text{Label: "Concepto", Body: strings.TrimSpace(r.Concept)}
			}
		case KindNotes:
			if vis.Visible(visibility.Notes) && strings.TrimSpace(r.Notes) != "" {
				s.Text = &Text{Label: "Notas", Body: strings.TrimSpace(r.Notes)}
			}
		case KindPayment:
			s.Payment = payment(r, vis)
		case KindSignature:
			if vis.Visible(visibility.Signature) {
				s.Signature = &Signature{Label: CustomerSignLabel, ImageRef: r.Signature}
				if vis.Visible(visibility.ReceivedByName) {
					s.Signature.ReceivedBy = strings.TrimSpace(r.ReceivedByName)
				}
			}
		case KindAuthorizedSignature:
			if vis.Visible(visibility.AuthorizedSignature) {
				s.Authorized = &Authorized{Label: AuthorizedSignLabel}
			}
		case KindFooter:
			text := strings.TrimSpace(in.FooterText)
			if text == "" {
				text = DefaultFooter
			}
			s.Footer = &Footer{Text: text}
		}
		s.Present = s.hasContent()
		doc.Sections = append(doc.Sections, s)
	}
	return doc, nil
}

func (s Section) hasContent() bool {
	return s.Header != nil || s.Customer != nil || s.Items != nil || s.Totals != nil ||
		s.Words != nil || s.Text != nil || s.Payment != nil || s.Signature != nil ||
		s.Authorized != nil || s.Footer != nil
}

func header(in Input) *Header {
	p := in.Profile
	vis := in.Visibility
	showName := vis.Visible(visibility.ShowCompanyNameInHeader)

	customTitle := strings.TrimSpace(in.TitleOverride)
	if customTitle == "" {
		customTitle = strings.TrimSpace(p.ReceiptTitle)
	}
	companyName := strings.TrimSpace(p.CompanyName)

	h := &Header{
		ReceiptNumber: in.Receipt.ReceiptNumber,
		Date:          LongDate(in.Receipt.Date),
		StatusLabel:   in.Receipt.Status.Label(),
	}
	switch {
	case customTitle != "":
		h.Title = customTitle
		if showName && companyName != "" {
			h.CompanyName = companyName
		}
	case showName && companyName != "":
		h.Title = companyName
	default:
		h.Title = FallbackTitle
	}
	if vis.Visible(visibility.ShowCompanyInfoInHeader) {
		h.InfoLines = p.InfoLines()
	}
	return h
}

func customer(r receiptdomain.Receipt, vis visibility.Set, p settingsdomain.CompanyProfile) *Customer {
	c := &Customer{Fields: []Field{}}
	add := func(f visibility.Field, label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			c.Fields = append(c.Fields, Field{Key: f.Key(), Label: label, Value: value})
		}
	}

	if vis.Visible(visibility.CustomerName) {
		add(visibility.CustomerName, "Cliente", r.CustomerName)
	}
	if vis.Visible(visibility.CustomerNIT) {
		nit := strings.TrimSpace(r.CustomerNIT)
		if nit == "" {
			nit = ConsumerNIT
		}
		add(visibility.CustomerNIT, "NIT", nit)
	}
	if vis.Visible(visibility.CustomerPhone) {
		add(visibility.CustomerPhone, "Teléfono", r.CustomerPhone)
	}
	if vis.Visible(visibility.CustomerEmail) {
		add(visibility.CustomerEmail, "Email", r.CustomerEmail)
	}
	if vis.Visible(visibility.CustomerAddress) {
		add(visibility.CustomerAddress, "Dirección", r.CustomerAddress)
	}
	if vis.Visible(visibility.Institution) {
		institution := r.Institution
		if vis.Visible(visibility.InstitutionUseCompanyName) {
			institution = p.CompanyName
		}
		add(visibility.Institution, "Institución", institution)
	}
	return c
}

func items(lines []receiptdomain.LineItem, sums totals.Totals) *Items {
	out := &Items{Rows: make([]Row, 0, len(lines))}
	for i, line := range lines {
		out.Rows = append(out.Rows, Row{
			Description: line.Description,
			Quantity:    FormatQuantity(line.Quantity),
			UnitPrice:   formatPrice(line.UnitPrice),
			Total:       sums.Lines[i].Format(),
		})
	}
	return out
}

func payment(r receiptdomain.Receipt, vis visibility.Set) *Payment {
	if !vis.Visible(visibility.PaymentMethod) || !vis.Visible(visibility.PaymentMethodInPrint) || r.PaymentMethod == "" {
		return nil
	}
	p := &Payment{Method: string(r.PaymentMethod)}
	switch r.PaymentMethod {
	case receiptdomain.PaymentCheque:
		p.CheckNumber = strings.TrimSpace(r.CheckNumber)
	case receiptdomain.PaymentTransfer:
		p.BankAccount = strings.TrimSpace(r.BankAccount)
	}
	return p
}

// FormatQuantity prints a quantity without trailing zeros: 3, 1.5, 0.25.
func FormatQuantity(q decimal.Decimal) string {
	return q.String()
}

func formatPrice(price decimal.Decimal) string {
	c, err := money.RoundToCents(price)
	if err != nil {
		return ""
	}
	return c.Format()
}
