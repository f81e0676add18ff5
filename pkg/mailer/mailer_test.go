package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sheetinvoicer/pkg/invoice"
)

func testInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ClientName:  "Alice <CEO>",
		ClientEmail: "a@x.com",
		Items: []invoice.Item{
			{Description: "Consulting", Quantity: "2", UnitPrice: "50", Amount: "0"},
			{Description: "Hosting", Quantity: "1", UnitPrice: "5", Amount: "5"},
		},
	}
}

func TestInvoiceTemplate_Render(t *testing.T) {
	t.Parallel()

	tmpl, err := NewInvoiceTemplate("")
	require.NoError(t, err)

	biz := invoice.BusinessInfo{Name: "Acme", Address: "1 Main St", TaxID: "TX-9"}
	html, err := tmpl.Render(testInvoice(), biz, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Contains(t, html, "<title>Invoice from Acme</title>")
	require.Contains(t, html, "<strong>Client:</strong> Alice &lt;CEO&gt;")
	require.Contains(t, html, "<strong>Invoice Date:</strong> 3/7/2026")
	require.Contains(t, html, "<td style=\"padding: 12px;\">Consulting</td>")
	require.Contains(t, html, "$100.00")
	require.Contains(t, html, "$105.00")
	require.Contains(t, html, "Tax ID: TX-9")
	require.Contains(t, html, "1 Main St")
}

func TestInvoiceTemplate_OmitsTaxIDWhenEmpty(t *testing.T) {
	t.Parallel()

	tmpl, err := NewInvoiceTemplate("")
	require.NoError(t, err)

	html, err := tmpl.Render(testInvoice(), invoice.BusinessInfo{Name: "Acme"}, time.Now())

	require.NoError(t, err)
	require.NotContains(t, html, "Tax ID")
}

func TestInvoiceTemplate_FooterIsSanitizedMarkdown(t *testing.T) {
	t.Parallel()

	tmpl, err := NewInvoiceTemplate("Pay within **30 days**.<script>alert(1)</script>")
	require.NoError(t, err)

	html, err := tmpl.Render(testInvoice(), invoice.BusinessInfo{Name: "Acme"}, time.Now())

	require.NoError(t, err)
	require.Contains(t, html, "<strong>30 days</strong>")
	require.NotContains(t, html, "<script>")
}

func TestSubject(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Invoice from Acme", Subject(invoice.BusinessInfo{Name: "Acme"}))
}

func TestEmail_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email Email
		want  error
	}{
		{name: "valid", email: Email{To: []string{"a@x.com"}, Subject: "s", HTML: "h"}},
		{name: "no recipient", email: Email{Subject: "s", HTML: "h"}, want: ErrNoRecipient},
		{name: "empty recipient", email: Email{To: []string{""}, Subject: "s", HTML: "h"}, want: ErrNoRecipient},
		{name: "no subject", email: Email{To: []string{"a@x.com"}, HTML: "h"}, want: ErrNoSubject},
		{name: "no content", email: Email{To: []string{"a@x.com"}, Subject: "s"}, want: ErrNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.email.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogSender_Send(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := &LogSender{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	err := s.Send(context.Background(), &Email{
		To:          []string{"a@x.com"},
		Subject:     "Invoice from Acme",
		HTML:        "<p>x</p>",
		Attachments: []Attachment{{Filename: "invoice-1.pdf"}},
	})

	require.NoError(t, err)
	require.Contains(t, buf.String(), "invoice-1.pdf")
	require.Contains(t, buf.String(), "a@x.com")

	require.ErrorIs(t, s.Send(context.Background(), &Email{}), ErrNoRecipient)
}
