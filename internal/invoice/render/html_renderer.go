package render

import (
	"bytes"
	"html/template"
	"time"
)

// The image layout is a single-frame flex/box document meant for casual
// sharing. It presents the same fields as the PDF and formats every
// number through the same functions.
const invoiceImageTemplate = `<!doctype html>
<html lang="{{.Company.Language}}">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Invoice.Number}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 28px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .frame { max-width: 640px; margin: 0 auto; }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid #111827;
      padding-bottom: 14px;
      margin-bottom: 18px;
    }
    .brand { display: flex; align-items: center; gap: 10px; }
    .brand img { max-height: 42px; }
    .muted { color: #6b7280; font-size: 12px; white-space: pre-line; }
    .meta { text-align: right; font-size: 13px; }
    .meta .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 10px;
    }
    .parties { display: flex; justify-content: space-between; margin-bottom: 18px; }
    table { width: 100%; border-collapse: collapse; font-size: 13px; }
    th, td { padding: 8px; border-bottom: 1px solid #e5e7eb; }
    th {
      text-align: left;
      text-transform: uppercase;
      font-size: 10px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    th.num, td.num { text-align: right; }
    .summary { display: flex; flex-direction: column; align-items: flex-end; margin-top: 10px; font-size: 13px; }
    .summary .row { display: flex; gap: 18px; padding: 2px 0; }
    .summary .row.total { font-size: 16px; font-weight: 700; border-top: 1px solid #111827; margin-top: 4px; padding-top: 6px; }
  </style>
</head>
<body>
  <div class="frame">
    <div class="header">
      <div class="brand">
        {{if .Company.LogoURL}}<img src="{{.Company.LogoURL}}" alt="Company logo" />{{end}}
        <div>
          <div><strong>{{.Company.Name}}</strong></div>
          <div class="muted">{{.Company.Address}}</div>
        </div>
      </div>
      <div class="meta">
        <div class="label">Invoice</div>
        <div><strong>{{.Invoice.Number}}</strong></div>
        <div>Status: {{.Invoice.Status}}</div>
        <div>Date: {{date .Invoice.InvoiceDate $.Company}}</div>
        <div>Due: {{date .Invoice.DueDate $.Company}}</div>
      </div>
    </div>

    <div class="parties">
      <div>
        <div class="label muted">Bill To</div>
        <div><strong>{{billTo .Customer}}</strong></div>
        {{if .Customer.Resolved}}<div class="muted">{{.Customer.Address}}</div>{{end}}
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th>Item</th>
          <th class="num">Qty</th>
          <th class="num">Unit Price</th>
          <th class="num">Total</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>{{itemName .Name}}</td>
          <td class="num">{{qty .Quantity $.Company}}</td>
          <td class="num">{{amount .UnitPrice $.Company}}</td>
          <td class="num">{{amount .Total $.Company}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="summary">
      <div class="row"><span>Subtotal</span><span>{{amount .Invoice.Subtotal $.Company}}</span></div>
      <div class="row"><span>{{taxLabel .Invoice.TaxPercent}}</span><span>{{amount .Invoice.TaxAmount $.Company}}</span></div>
      {{if gt .Invoice.DiscountValue 0}}<div class="row"><span>Discount</span><span>-{{amount .Invoice.DiscountValue $.Company}}</span></div>{{end}}
      {{if gt .Invoice.UnderpaymentValue 0}}<div class="row"><span>Underpayment</span><span>{{amount .Invoice.UnderpaymentValue $.Company}}</span></div>{{end}}
      <div class="row total"><span>Total</span><span>{{amount .Invoice.Total $.Company}}</span></div>
    </div>
  </div>
</body>
</html>
`

type imageRenderer struct {
	tpl *template.Template
}

// NewImageRenderer creates the box-layout markup renderer.
func NewImageRenderer() ImageRenderer {
	funcs := template.FuncMap{
		"amount": func(value int64, company CompanyView) string { return formatAmount(value, company) },
		"qty": func(value int64, company CompanyView) string {
			return formatAmount(value, CompanyView{Language: company.Language})
		},
		"date":     func(value time.Time, company CompanyView) string { return formatDate(value, company) },
		"taxLabel": formatTaxLabel,
		"billTo":   customerName,
		"itemName": func(name string) string {
			if name == "" {
				return unresolvedLabel
			}
			return name
		},
	}
	return &imageRenderer{
		tpl: template.Must(template.New("invoice_image").Funcs(funcs).Parse(invoiceImageTemplate)),
	}
}

func (r *imageRenderer) RenderImage(input RenderInput) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
