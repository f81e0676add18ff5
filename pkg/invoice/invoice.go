// pkg/invoice/invoice.go

package invoice

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultClientName is used when a client's first row has no mapped name.
const DefaultClientName = "Valued Client"

// BusinessInfo identifies the sender of the invoices.
type BusinessInfo struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	TaxID   string `json:"taxId" yaml:"tax_id"`
}

// Invoice represents the invoice for a single client.
type Invoice struct {
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	Items       []Item `json:"items"`
}

// Total sums the line amounts of all items.
func (inv *Invoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range inv.Items {
		total = total.Add(it.LineAmount())
	}
	return total
}

// Item represents a line on the invoice. Values are kept as they appear in
// the spreadsheet; numeric interpretation happens when amounts are computed.
type Item struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	Amount      string `json:"amount"`
}

// LineAmount returns the item amount when it is a non-zero number, otherwise
// quantity times unit price.
func (it Item) LineAmount() decimal.Decimal {
	if amt, ok := ParseNumber(it.Amount); ok && !amt.IsZero() {
		return amt
	}
	qty, okQty := ParseNumber(it.Quantity)
	price, okPrice := ParseNumber(it.UnitPrice)
	if !okQty || !okPrice {
		return decimal.Zero
	}
	return qty.Mul(price)
}

// Price returns the unit price as a number, zero when it does not parse.
func (it Item) Price() decimal.Decimal {
	price, _ := ParseNumber(it.UnitPrice)
	return price
}

// Row is one CSV record keyed by header.
type Row map[string]string

// UnmarshalJSON accepts scalar values of any JSON type so rows produced by
// spreadsheet tooling with typed cells decode without loss. Numbers are
// written the way a browser prints them. A numeric zero and false are empty,
// so they fall back to the column default like a missing cell.
func (r *Row) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	row := make(Row, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			row[k] = ""
		case string:
			row[k] = val
		case json.Number:
			row[k] = formatJSONNumber(val)
		case bool:
			if val {
				row[k] = "true"
			} else {
				row[k] = ""
			}
		default:
			b, err := json.Marshal(val)
			if err != nil {
				return err
			}
			row[k] = string(b)
		}
	}
	*r = row
	return nil
}

func formatJSONNumber(n json.Number) string {
	f, _ := strconv.ParseFloat(n.String(), 64)
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return ""
	}

	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// 1.5e-07 -> 1.5e-7
	s := strconv.FormatFloat(f, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	digits := strings.TrimLeft(s[i+2:], "0")
	return s[:i+2] + digits
}
