package render

import (
	"strings"
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

const pixel = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

func testDocument(t *testing.T, vis visibility.Set) document.Document {
	t.Helper()
	doc, err := document.Assemble(document.Input{
		Receipt: receiptdomain.Receipt{
			ReceiptNumber:  "RECIBO-00000007",
			Date:           time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
			Status:         receiptdomain.StatusPaid,
			CustomerName:   "Juan <Pérez>",
			PaymentMethod:  receiptdomain.PaymentCash,
			ReceivedByName: "Ana",
			Signature:      pixel,
			Items: []receiptdomain.LineItem{
				{Description: "Servicio", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("350.50")},
			},
		},
		Visibility: vis,
		Profile:    settingsdomain.CompanyProfile{CompanyName: "ACME", CompanyInfo: "Zona 1 | Tel: 2222-3333"},
	})
	require.NoError(t, err)
	return doc
}

func sectionClasses(html string) []string {
	markers := []string{"rc-header", "rc-customer", "rc-items", "rc-totals", "rc-words", "rc-payment", "rc-signature\"", "rc-authorized", "rc-footer"}
	var out []string
	for _, m := range markers {
		if strings.Contains(html, "class=\""+m) {
			out = append(out, m)
		}
	}
	return out
}

func TestRenderScreenAndPrintShareSections(t *testing.T) {
	r := NewHTMLRenderer()
	doc := testDocument(t, visibility.Defaults())

	screen, err := r.RenderScreen(doc)
	require.NoError(t, err)
	printed, err := r.RenderPrint(doc, DefaultPage())
	require.NoError(t, err)

	assert.Equal(t, sectionClasses(screen), sectionClasses(printed))
	for _, out := range []string{screen, printed} {
		assert.Contains(t, out, "TRESCIENTOS CINCUENTA QUETZALES CON 50/100")
		assert.Contains(t, out, "Q350.50")
		assert.Contains(t, out, "RECIBO-00000007")
		assert.Contains(t, out, "Juan &lt;Pérez&gt;")
		assert.Contains(t, out, `src="data:image/png;base64,iVBORw0KGgo`)
	}

	assert.True(t, strings.HasPrefix(printed, "<!doctype html>"))
	assert.Contains(t, printed, "@page { size: 8in 5.5in; margin: 0.25in; }")
	for _, th := range []string{"Descripción", "Cant.", "P. Unit.", "Total"} {
		assert.Contains(t, printed, "<th")
		assert.Contains(t, printed, th)
	}
	assert.NotContains(t, screen, "<html")
}

func TestRenderOmitsHiddenSignature(t *testing.T) {
	r := NewHTMLRenderer()
	vis := visibility.Defaults().With(visibility.Signature, false)
	doc := testDocument(t, vis)

	for _, render := range []func() (string, error){
		func() (string, error) { return r.RenderScreen(doc) },
		func() (string, error) { return r.RenderPrint(doc, DefaultPage()) },
	} {
		out, err := render()
		require.NoError(t, err)
		assert.NotContains(t, out, `class="rc-signature"`)
		assert.NotContains(t, out, document.CustomerSignLabel)
		assert.Contains(t, out, document.AuthorizedSignLabel)
	}
}

func TestPageFromLayoutRejectsInjection(t *testing.T) {
	page := PageFromLayout(config.PageLayout{Width: "210mm", Height: "1in; } body { display:none", Margin: ""})
	assert.Equal(t, "210mm", string(page.Width))
	assert.Equal(t, "5.5in", string(page.Height))
	assert.Equal(t, "0.25in", string(page.Margin))
}

func TestImageSrc(t *testing.T) {
	assert.Equal(t, pixel, string(imageSrc(pixel)))
	assert.Equal(t, "https://cdn.example.com/sig.png", string(imageSrc("https://cdn.example.com/sig.png")))
	assert.Empty(t, string(imageSrc("javascript:alert(1)")))
	assert.Empty(t, string(imageSrc("")))
}
