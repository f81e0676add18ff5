package mailer

import (
	"bytes"
	"errors"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/sheetinvoicer/pkg/invoice"
)

const invoiceHTML = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Invoice from {{.Business.Name}}</title>
  </head>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <div style="text-align: center; margin-bottom: 30px;">
        <h1 style="color: #2563eb; margin: 0;">INVOICE</h1>
        <p style="margin: 5px 0;">from {{.Business.Name}}</p>
      </div>

      <div style="background: #f8fafc; padding: 20px; border-radius: 8px; margin-bottom: 20px;">
        <p><strong>Client:</strong> {{.Invoice.ClientName}}</p>
        <p><strong>Invoice Date:</strong> {{.Date}}</p>
      </div>

      <table style="width: 100%; border-collapse: collapse; margin-bottom: 20px;">
        <thead>
          <tr style="background: #2563eb; color: white;">
            <th style="padding: 12px; text-align: left;">Description</th>
            <th style="padding: 12px; text-align: center;">Qty</th>
            <th style="padding: 12px; text-align: right;">Price</th>
            <th style="padding: 12px; text-align: right;">Amount</th>
          </tr>
        </thead>
        <tbody>
          {{- range .Lines}}
          <tr style="border-bottom: 1px solid #e2e8f0;">
            <td style="padding: 12px;">{{.Description}}</td>
            <td style="padding: 12px; text-align: center;">{{.Quantity}}</td>
            <td style="padding: 12px; text-align: right;">{{.Price}}</td>
            <td style="padding: 12px; text-align: right;">{{.Amount}}</td>
          </tr>
          {{- end}}
        </tbody>
        <tfoot>
          <tr style="background: #f1f5f9;">
            <td colspan="3" style="padding: 12px; text-align: right; font-weight: bold;">Total:</td>
            <td style="padding: 12px; text-align: right; font-weight: bold;">{{.Total}}</td>
          </tr>
        </tfoot>
      </table>

      <div style="text-align: center; margin-top: 30px; padding: 20px; background: #f8fafc; border-radius: 8px;">
        <p style="margin: 0;">Thank you for your business!</p>
        <p style="margin: 5px 0 0 0;">
          <strong>{{.Business.Name}}</strong><br>
          {{.Business.Address}}
          {{- if .Business.TaxID}}<br>Tax ID: {{.Business.TaxID}}{{end}}
        </p>
        {{- if .Footer}}
        <div style="margin-top: 15px; font-size: 12px; color: #64748b;">{{.Footer}}</div>
        {{- end}}
      </div>
    </div>
  </body>
</html>
`

// InvoiceTemplate renders the HTML body of an invoice email.
type InvoiceTemplate struct {
	tmpl   *template.Template
	footer template.HTML
}

type invoiceView struct {
	Business invoice.BusinessInfo
	Invoice  *invoice.Invoice
	Date     string
	Lines    []lineView
	Total    string
	Footer   template.HTML
}

type lineView struct {
	Description string
	Quantity    string
	Price       string
	Amount      string
}

// NewInvoiceTemplate parses the invoice email template. footerMarkdown is an
// optional note appended below the business details; it is rendered as
// markdown and sanitized.
func NewInvoiceTemplate(footerMarkdown string) (*InvoiceTemplate, error) {
	tmpl, err := template.New("invoice").Parse(invoiceHTML)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	t := &InvoiceTemplate{tmpl: tmpl}
	if footerMarkdown != "" {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(footerMarkdown), &buf); err != nil {
			return nil, errors.Join(ErrRenderFailed, err)
		}
		t.footer = template.HTML(bluemonday.UGCPolicy().SanitizeBytes(buf.Bytes()))
	}
	return t, nil
}

// Subject returns the subject line for invoices sent by biz.
func Subject(biz invoice.BusinessInfo) string {
	return "Invoice from " + biz.Name
}

// Render produces the email body for one client invoice dated on date.
func (t *InvoiceTemplate) Render(inv *invoice.Invoice, biz invoice.BusinessInfo, date time.Time) (string, error) {
	view := invoiceView{
		Business: biz,
		Invoice:  inv,
		Date:     date.Format("1/2/2006"),
		Lines:    make([]lineView, 0, len(inv.Items)),
		Total:    invoice.FormatMoney(inv.Total()),
		Footer:   t.footer,
	}
	for _, it := range inv.Items {
		view.Lines = append(view.Lines, lineView{
			Description: it.Description,
			Quantity:    it.Quantity,
			Price:       invoice.FormatMoney(it.Price()),
			Amount:      invoice.FormatMoney(it.LineAmount()),
		})
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, view); err != nil {
		return "", errors.Join(ErrRenderFailed, err)
	}
	return buf.String(), nil
}
