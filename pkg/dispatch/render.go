package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/sheetinvoicer/pkg/invoice"
)

// Rendered is one client's invoice with its PDF.
type Rendered struct {
	Invoice *invoice.Invoice
	PDF     []byte
}

// Render validates the request and renders every client's PDF without
// sending anything. Rendering stops at the first failure.
func (s *Service) Render(ctx context.Context, req Request) ([]Rendered, error) {
	groups, err := s.Validate(req)
	if err != nil {
		return nil, err
	}

	out := make([]Rendered, 0, groups.Len())
	for _, inv := range groups.Invoices() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := s.renderer.Render(inv, req.BusinessInfo)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("render invoice for %s", inv.ClientEmail), err)
		}
		out = append(out, Rendered{Invoice: inv, PDF: b})
	}
	return out, nil
}
