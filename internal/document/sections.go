package document

import "github.com/smallbiznis/recibo/internal/money"

type Kind string

const (
	KindHeader              Kind = "header"
	KindCustomerInfo        Kind = "customer_info"
	KindLineItems           Kind = "line_items"
	KindTotals              Kind = "totals"
	KindAmountInWords       Kind = "amount_in_words"
	KindConcept             Kind = "concept"
	KindNotes               Kind = "notes"
	KindPayment             Kind = "payment"
	KindSignature           Kind = "signature"
	KindAuthorizedSignature Kind = "authorized_signature"
	KindFooter              Kind = "footer"
)

// Order is the fixed section sequence of every assembled document.
var Order = []Kind{
	KindHeader,
	KindCustomerInfo,
	KindLineItems,
	KindTotals,
	KindAmountInWords,
	KindConcept,
	KindNotes,
	KindPayment,
	KindSignature,
	KindAuthorizedSignature,
	KindFooter,
}

// Section is one renderer-agnostic block. Absent sections carry no content.
type Section struct {
	Kind    Kind `json:"kind"`
	Present bool `json:"present"`

	Header     *Header     `json:"header,omitempty"`
	Customer   *Customer   `json:"customer,omitempty"`
	Items      *Items      `json:"items,omitempty"`
	Totals     *Totals     `json:"totals,omitempty"`
	Words      *Words      `json:"words,omitempty"`
	Text       *Text       `json:"text,omitempty"`
	Payment    *Payment    `json:"payment,omitempty"`
	Signature  *Signature  `json:"signature,omitempty"`
	Authorized *Authorized `json:"authorized,omitempty"`
	Footer     *Footer     `json:"footer,omitempty"`
}

type Header struct {
	Title         string   `json:"title"`
	CompanyName   string   `json:"company_name,omitempty"`
	InfoLines     []string `json:"info_lines,omitempty"`
	ReceiptNumber string   `json:"receipt_number,omitempty"`
	Date          string   `json:"date"`
	StatusLabel   string   `json:"status_label,omitempty"`
}

type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type Customer struct {
	Fields []Field `json:"fields"`
}

type Row struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

type Items struct {
	Rows []Row `json:"rows"`
}

type Totals struct {
	Subtotal      string      `json:"subtotal"`
	Total         string      `json:"total"`
	SubtotalCents money.Cents `json:"subtotal_cents"`
	TotalCents    money.Cents `json:"total_cents"`
}

type Words struct {
	Text     string `json:"text"`
	Overflow bool   `json:"overflow"`
}

type Text struct {
	Label string `json:"label"`
	Body  string `json:"body"`
}

type Payment struct {
	Method      string `json:"method"`
	CheckNumber string `json:"check_number,omitempty"`
	BankAccount string `json:"bank_account,omitempty"`
}

type Signature struct {
	Label      string `json:"label"`
	ImageRef   string `json:"image_ref,omitempty"`
	ReceivedBy string `json:"received_by,omitempty"`
}

type Authorized struct {
	Label string `json:"label"`
}

type Footer struct {
	Text string `json:"text"`
}

// Document is the assembled receipt consumed by every renderer.
type Document struct {
	ReceiptNumber string      `json:"receipt_number"`
	ISODate       string      `json:"iso_date"`
	Total         money.Cents `json:"total"`
	Sections      []Section   `json:"sections"`
}

// Section returns the section of kind k. Every kind in Order is always listed.
func (d Document) Section(k Kind) Section {
	for _, s := range d.Sections {
		if s.Kind == k {
			return s
		}
	}
	return Section{Kind: k}
}

func (d Document) Has(k Kind) bool {
	return d.Section(k).Present
}

// PresentSections lists the sections a renderer should draw, in order.
func (d Document) PresentSections() []Section {
	out := make([]Section, 0, len(d.Sections))
	for _, s := range d.Sections {
		if s.Present {
			out = append(out, s)
		}
	}
	return out
}
