package document

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallbiznis/recibo/internal/money"
	receiptdomain "github.com/smallbiznis/recibo/internal/receipt/domain"
	settingsdomain "github.com/smallbiznis/recibo/internal/settings/domain"
	"github.com/smallbiznis/recibo/internal/visibility"
)

func sampleReceipt() receiptdomain.Receipt {
	return receiptdomain.Receipt{
		ReceiptNumber:  "RECIBO-00000042",
		Date:           time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		Status:         receiptdomain.StatusCompleted,
		CustomerName:   "María López",
		CustomerPhone:  "5555-1234",
		Institution:    "Colegio San José",
		Concept:        "Pago de colegiatura",
		Notes:          "Octubre",
		PaymentMethod:  receiptdomain.PaymentCheque,
		CheckNumber:    "000123",
		BankAccount:    "stale",
		ReceivedByName: "Ana Pérez",
		Items:          []receiptdomain.LineItem{
			{Description: "Colegiatura", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("100.00")},
			{Description: "Material", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("50.50")},
		},
	}
}

func sampleInput() Input {
	return Input{
		Receipt:    sampleReceipt(),
		Visibility: visibility.Defaults(),
		Profile:    settingsdomain.CompanyProfile{CompanyName: "ACME S.A.", CompanyInfo: "Zona 1 | Tel: 2222-3333"},
	}
}

func kinds(sections []Section) []Kind {
	out := make([]Kind, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Kind)
	}
	return out
}

func TestAssembleAllVisible(t *testing.T) {
	doc, err := Assemble(sampleInput())
	require.NoError(t, err)

	assert.Equal(t, Order, kinds(doc.Sections))
	assert.Equal(t, Order, kinds(doc.PresentSections()))
	assert.Equal(t, money.Cents(35050), doc.Total)

	totals := doc.Section(KindTotals).Totals
	require.NotNil(t, totals)
	assert.Equal(t, "Q350.50", totals.Subtotal)
	assert.Equal(t, "Q350.50", totals.Total)

	w := doc.Section(KindAmountInWords).Words
	require.NotNil(t, w)
	assert.Equal(t, "TRESCIENTOS CINCUENTA QUETZALES CON 50/100", w.Text)
	assert.False(t, w.Overflow)

	rows := doc.Section(KindLineItems).Items.Rows
	require.Len(t, rows, 2)
	assert.Equal(t, Row{Description: "Colegiatura", Quantity: "3", UnitPrice: "Q100.00", Total: "Q300.00"}, rows[0])
	assert.Equal(t, "Q50.50", rows[1].Total)

	h := doc.Section(KindHeader).Header
	assert.Equal(t, "ACME S.A.", h.Title)
	assert.Empty(t, h.CompanyName)
	assert.Equal(t, []string{"Zona 1", "Tel: 2222-3333"}, h.InfoLines)
	assert.Equal(t, "14 de octubre de 2026", h.Date)
	assert.Equal(t, "Completado", h.StatusLabel)

	assert.Equal(t, DefaultFooter, doc.Section(KindFooter).Footer.Text)
}

func TestAssembleSignatureHiddenKeepsAuthorized(t *testing.T) {
	in := sampleInput()
	in.Visibility = visibility.Resolve(map[string]bool{"signature": false})

	doc, err := Assemble(in)
	require.NoError(t, err)
	assert.False(t, doc.Has(KindSignature))
	assert.Nil(t, doc.Section(KindSignature).Signature)
	assert.True(t, doc.Has(KindAuthorizedSignature))
	assert.NotContains(t, kinds(doc.PresentSections()), KindSignature)
}

func TestAssembleIsIdempotent(t *testing.T) {
	a, err := Assemble(sampleInput())
	require.NoError(t, err)
	b, err := Assemble(sampleInput())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHeaderStateMachine(t *testing.T) {
	cases := []struct {
		name      string
		title     string
		showName  bool
		showInfo  bool
		info      string
		wantTitle string
		wantName  string
		wantInfo  []string
	}{
		{"custom title with name", "COMPROBANTE", true, true, "A|B", "COMPROBANTE", "ACME S.A.", []string{"A", "B"}},
		{"custom title without name", "COMPROBANTE", false, true, "A", "COMPROBANTE", "", []string{"A"}},
		{"company name as title", "", true, false, "A", "ACME S.A.", "", nil},
		{"fallback title", "", false, true, "", FallbackTitle, "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := sampleInput()
			in.Profile.ReceiptTitle = tc.title
			in.Profile.CompanyInfo = tc.info
			in.Visibility = visibility.Defaults().
				With(visibility.ShowCompanyNameInHeader, tc.showName).
				With(visibility.ShowCompanyInfoInHeader, tc.showInfo)

			doc, err := Assemble(in)
			require.NoError(t, err)
			h := doc.Section(KindHeader).Header
			assert.Equal(t, tc.wantTitle, h.Title)
			assert.Equal(t, tc.wantName, h.CompanyName)
			assert.Equal(t, tc.wantInfo, h.InfoLines)
		})
	}
}

func TestTitleOverrideWins(t *testing.T) {
	in := sampleInput()
	in.Profile.ReceiptTitle = "COMPROBANTE"
	in.TitleOverride = "DUPLICADO"
	doc, err := Assemble(in)
	require.NoError(t, err)
	assert.Equal(t, "DUPLICADO", doc.Section(KindHeader).Header.Title)
}

func TestPaymentDetailsFollowMethod(t *testing.T) {
	doc, err := Assemble(sampleInput())
	require.NoError(t, err)
	p := doc.Section(KindPayment).Payment
	require.NotNil(t, p)
	assert.Equal(t, "Cheque", p.Method)
	assert.Equal(t, "000123", p.CheckNumber)
	assert.Empty(t, p.BankAccount)

	in := sampleInput()
	in.Receipt.PaymentMethod = receiptdomain.PaymentTransfer
	in.Receipt.BankAccount = "GT-998"
	doc, err = Assemble(in)
	require.NoError(t, err)
	p = doc.Section(KindPayment).Payment
	assert.Empty(t, p.CheckNumber)
	assert.Equal(t, "GT-998", p.BankAccount)

	in = sampleInput()
	in.Visibility = visibility.Defaults().With(visibility.PaymentMethodInPrint, false)
	doc, err = Assemble(in)
	require.NoError(t, err)
	assert.False(t, doc.Has(KindPayment))

	in = sampleInput()
	in.Receipt.PaymentMethod = ""
	doc, err = Assemble(in)
	require.NoError(t, err)
	assert.False(t, doc.Has(KindPayment))
}

func TestInstitutionAutofillShadowsManualValue(t *testing.T) {
	in := sampleInput()
	in.Visibility = visibility.Defaults().With(visibility.InstitutionUseCompanyName, true)
	doc, err := Assemble(in)
	require.NoError(t, err)

	var institution string
	for _, f := range doc.Section(KindCustomerInfo).Customer.Fields {
		if f.Key == visibility.Institution.Key() {
			institution = f.Value
		}
	}
	assert.Equal(t, "ACME S.A.", institution)
}

func TestCustomerBlock(t *testing.T) {
	doc, err := Assemble(sampleInput())
	require.NoError(t, err)
	fields := doc.Section(KindCustomerInfo).Customer.Fields
	labels := map[string]string{}
	for _, f := range fields {
		labels[f.Label] = f.Value
	}
	assert.Equal(t, "María López", labels["Cliente"])
	assert.Equal(t, ConsumerNIT, labels["NIT"])
	assert.Equal(t, "5555-1234", labels["Teléfono"])
	_, hasEmail := labels["Email"]
	assert.False(t, hasEmail)

	in := sampleInput()
	in.Visibility = visibility.Defaults().With(visibility.CustomerNIT, false)
	doc, err = Assemble(in)
	require.NoError(t, err)
	for _, f := range doc.Section(KindCustomerInfo).Customer.Fields {
		assert.NotEqual(t, "NIT", f.Label)
	}
}

func TestOptionalSectionsOmitted(t *testing.T) {
	in := sampleInput()
	in.Receipt.Concept = "  "
	in.Visibility = visibility.Defaults().
		With(visibility.Notes, false).
		With(visibility.AmountInWords, false).
		With(visibility.LineItemsInPrint, false).
		With(visibility.AuthorizedSignature, false)

	doc, err := Assemble(in)
	require.NoError(t, err)
	assert.Equal(t, []Kind{
		KindHeader, KindCustomerInfo, KindTotals, KindPayment, KindSignature, KindFooter,
	}, kinds(doc.PresentSections()))
	assert.Len(t, doc.Sections, len(Order))
}

func TestAssembleEmptyItems(t *testing.T) {
	in := sampleInput()
	in.Receipt.Items = nil
	doc, err := Assemble(in)
	require.NoError(t, err)
	assert.False(t, doc.Has(KindLineItems))
	assert.Equal(t, "Q0.00", doc.Section(KindTotals).Totals.Total)
	assert.Equal(t, "CERO QUETZALES CON 00/100", doc.Section(KindAmountInWords).Words.Text)
}

func TestAssembleOverflowIsFlagged(t *testing.T) {
	in := sampleInput()
	in.Receipt.Items = []receiptdomain.LineItem{{
		Description: "Terreno",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(1500000),
	}}
	doc, err := Assemble(in)
	require.NoError(t, err)
	w := doc.Section(KindAmountInWords).Words
	assert.True(t, w.Overflow)
	assert.Equal(t, "CANTIDAD EXCEDE LÍMITE", w.Text)
	assert.Equal(t, "Q1,500,000.00", doc.Section(KindTotals).Totals.Total)
}

func TestAssembleRejectsNegative(t *testing.T) {
	in := sampleInput()
	in.Receipt.Items[0].UnitPrice = decimal.NewFromInt(-1)
	_, err := Assemble(in)
	assert.ErrorIs(t, err, money.ErrNegativeAmount)
}

func TestLongDate(t *testing.T) {
	assert.Equal(t, "1 de enero de 2026", LongDate(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31 de diciembre de 2025", LongDate(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Empty(t, LongDate(time.Time{}))
}

func TestAssembleRejectsOverflowingTotal(t *testing.T) {
	in := sampleInput()
	huge := decimal.RequireFromString("50000000000000000")
	in.Receipt.Items = []receiptdomain.LineItem{
		{Description: "A", Quantity: decimal.NewFromInt(1), UnitPrice: huge},
		{Description: "B", Quantity: decimal.NewFromInt(1), UnitPrice: huge},
	}
	doc, err := Assemble(in)
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
	assert.Empty(t, doc.Sections)
}
