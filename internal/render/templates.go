package render

// sectionsTemplate is shared by the screen and print projections; both
// iterate the same section list and differ only in the surrounding markup.
const sectionsTemplate = `
{{define "sections"}}{{range .PresentSections}}{{template "section" .}}{{end}}{{end}}

{{define "section"}}
{{- if eq .Kind "header"}}{{with .Header}}
<header class="rc-header">
  <div class="rc-company">
    <h1 class="rc-title">{{.Title}}</h1>
    {{- if .CompanyName}}<div class="rc-company-name">{{.CompanyName}}</div>{{end}}
    {{- range .InfoLines}}<div class="rc-company-info">{{.}}</div>{{end}}
  </div>
  <div class="rc-meta">
    {{- if .ReceiptNumber}}<div class="rc-number">No. {{.ReceiptNumber}}</div>{{end}}
    <div class="rc-date">{{.Date}}</div>
    {{- if .StatusLabel}}<div class="rc-status">{{.StatusLabel}}</div>{{end}}
  </div>
</header>
{{- end}}
{{- else if eq .Kind "customer_info"}}{{with .Customer}}
<section class="rc-customer">
  {{- range .Fields}}
  <div class="rc-field rc-field-{{.Key}}"><span class="rc-label">{{.Label}}:</span> <span class="rc-value">{{.Value}}</span></div>
  {{- end}}
</section>
{{- end}}
{{- else if eq .Kind "line_items"}}{{with .Items}}
<table class="rc-items">
  <thead><tr><th class="rc-desc">Descripción</th><th class="rc-num">Cant.</th><th class="rc-num">P. Unit.</th><th class="rc-num">Total</th></tr></thead>
  <tbody>
  {{- range .Rows}}
    <tr><td class="rc-desc">{{.Description}}</td><td class="rc-num">{{.Quantity}}</td><td class="rc-num">{{.UnitPrice}}</td><td class="rc-num">{{.Total}}</td></tr>
  {{- end}}
  </tbody>
</table>
{{- end}}
{{- else if eq .Kind "totals"}}{{with .Totals}}
<section class="rc-totals">
  <div class="rc-subtotal"><span>Subtotal:</span> <span>{{.Subtotal}}</span></div>
  <div class="rc-total"><span>TOTAL:</span> <span>{{.Total}}</span></div>
</section>
{{- end}}
{{- else if eq .Kind "amount_in_words"}}{{with .Words}}
<section class="rc-words{{if .Overflow}} rc-words-overflow{{end}}"><span class="rc-label">Cantidad en letras:</span> {{.Text}}</section>
{{- end}}
{{- else if or (eq .Kind "concept") (eq .Kind "notes")}}{{with .Text}}
<section class="rc-text"><span class="rc-label">{{.Label}}:</span> {{.Body}}</section>
{{- end}}
{{- else if eq .Kind "payment"}}{{with .Payment}}
<section class="rc-payment">
  <div><span class="rc-label">Forma de pago:</span> {{.Method}}</div>
  {{- if .CheckNumber}}<div><span class="rc-label">No. de cheque:</span> {{.CheckNumber}}</div>{{end}}
  {{- if .BankAccount}}<div><span class="rc-label">Cuenta bancaria:</span> {{.BankAccount}}</div>{{end}}
</section>
{{- end}}
{{- else if eq .Kind "signature"}}{{with .Signature}}
<section class="rc-signature">
  {{- with imageSrc .ImageRef}}<img class="rc-signature-image" src="{{.}}" alt="Firma">{{end}}
  <div class="rc-signature-line"></div>
  <div class="rc-signature-label">{{.Label}}</div>
  {{- if .ReceivedBy}}<div class="rc-received-by">{{.ReceivedBy}}</div>{{end}}
</section>
{{- end}}
{{- else if eq .Kind "authorized_signature"}}{{with .Authorized}}
<section class="rc-authorized">
  <div class="rc-signature-line"></div>
  <div class="rc-signature-label">{{.Label}}</div>
</section>
{{- end}}
{{- else if eq .Kind "footer"}}{{with .Footer}}
<footer class="rc-footer">{{.Text}}</footer>
{{- end}}
{{- end}}
{{end}}
`

const screenTemplate = `{{define "screen"}}<div class="receipt-preview" data-receipt="{{.ReceiptNumber}}">{{template "sections" .}}
</div>{{end}}`

const printTemplate = `{{define "print"}}<!doctype html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <title>Recibo {{.Document.ReceiptNumber}}</title>
  <style>
    @page { size: {{.Page.Width}} {{.Page.Height}}; margin: {{.Page.Margin}}; }
    * { box-sizing: border-box; }
    body { margin: 0; font-family: Arial, Helvetica, sans-serif; font-size: 11px; color: #000; }
    .receipt-print { width: 100%; }
    .rc-header { display: flex; justify-content: space-between; border-bottom: 2px solid #000; padding-bottom: 6px; margin-bottom: 8px; }
    .rc-title { font-size: 16px; margin: 0; }
    .rc-company-name { font-weight: bold; }
    .rc-company-info { font-size: 10px; }
    .rc-meta { text-align: right; }
    .rc-number { font-weight: bold; font-size: 13px; }
    .rc-customer { display: grid; grid-template-columns: 1fr 1fr; gap: 2px 12px; margin-bottom: 8px; }
    .rc-label { font-weight: bold; }
    .rc-items { width: 100%; border-collapse: collapse; margin-bottom: 6px; }
    .rc-items th { border-bottom: 1px solid #000; text-align: left; padding: 2px; }
    .rc-items td { padding: 2px; border-bottom: 1px dotted #999; }
    .rc-num { text-align: right; }
    .rc-totals { text-align: right; margin-bottom: 6px; }
    .rc-total { font-size: 13px; font-weight: bold; }
    .rc-words, .rc-text, .rc-payment { margin-bottom: 6px; }
    .rc-signature, .rc-authorized { display: inline-block; width: 45%; margin-top: 18px; text-align: center; vertical-align: bottom; }
    .rc-signature-image { max-height: 50px; }
    .rc-signature-line { border-top: 1px solid #000; margin: 0 12px 2px; }
    .rc-footer { text-align: center; margin-top: 10px; font-size: 10px; }
  </style>
</head>
<body>
<div class="receipt-print">{{template "sections" .Document}}
</div>
</body>
</html>
{{end}}`
