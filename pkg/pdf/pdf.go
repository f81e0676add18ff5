// Package pdf renders a client invoice as a single-page PDF document.
package pdf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/sheetinvoicer/pkg/invoice"
)

// ErrRender indicates the PDF document could not be produced.
var ErrRender = errors.New("failed to render invoice pdf")

// Page geometry in points. Positions are measured from the top of the page.
const (
	pageHeight     = 842.0
	marginX        = 50.0
	colQuantity    = 300.0
	colPrice       = 350.0
	colAmount      = 450.0
	headerTop      = 100.0
	maxDescription = 40

	fontRegular = ""
	fontBold    = "B"
	fontFamily  = "Helvetica"
)

// Renderer produces invoice PDFs. The zero value is ready to use.
type Renderer struct {
	// Creator is written into the document metadata.
	Creator string

	noCompress bool
}

// New creates a Renderer that stamps documents with creator.
func New(creator string) *Renderer {
	return &Renderer{Creator: creator}
}

// Render lays out the business header, client header, item table and total
// on one A4 page. Items that do not fit run off the page.
func (r *Renderer) Render(inv *invoice.Invoice, biz invoice.BusinessInfo) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(!r.noCompress)
	pdf.SetTitle(fmt.Sprintf("Invoice for %s", inv.ClientName), true)
	if r.Creator != "" {
		pdf.SetCreator(r.Creator, true)
	}
	pdf.AddPage()
	pdf.SetTextColor(0, 0, 0)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(x, y float64, style string, size float64, s string) {
		pdf.SetFont(fontFamily, style, size)
		pdf.Text(x, y, tr(s))
	}

	y := headerTop
	text(marginX, y, fontBold, 20, biz.Name)
	y += 30

	if biz.Address != "" {
		text(marginX, y, fontRegular, 12, biz.Address)
		y += 20
	}
	if biz.TaxID != "" {
		text(marginX, y, fontRegular, 12, "Tax ID: "+biz.TaxID)
		y += 20
	}

	y += 40
	text(marginX, y, fontBold, 14, "Invoice for: "+inv.ClientName)
	y += 20
	text(marginX, y, fontRegular, 12, "Email: "+inv.ClientEmail)

	y += 60
	text(marginX, y, fontBold, 12, "Description")
	text(colQuantity, y, fontBold, 12, "Qty")
	text(colPrice, y, fontBold, 12, "Price")
	text(colAmount, y, fontBold, 12, "Amount")

	y += 25
	for _, it := range inv.Items {
		text(marginX, y, fontRegular, 10, truncate(it.Description, maxDescription))
		text(colQuantity, y, fontRegular, 10, it.Quantity)
		text(colPrice, y, fontRegular, 10, invoice.FormatMoney(it.Price()))
		text(colAmount, y, fontRegular, 10, invoice.FormatMoney(it.LineAmount()))
		y += 20
	}

	y += 20
	text(colPrice, y, fontBold, 12, "Total:")
	text(colAmount, y, fontBold, 12, invoice.FormatMoney(inv.Total()))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Join(ErrRender, err)
	}
	return buf.Bytes(), nil
}

// Overflows reports whether the item table extends past the bottom of the
// page for the given invoice and business header.
func Overflows(inv *invoice.Invoice, biz invoice.BusinessInfo) bool {
	y := headerTop + 30
	if biz.Address != "" {
		y += 20
	}
	if biz.TaxID != "" {
		y += 20
	}
	y += 40 + 20 + 60 + 25 + float64(len(inv.Items))*20 + 20
	return y > pageHeight
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
