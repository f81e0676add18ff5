package invoice

// Groups holds the invoices built from a CSV, in order of first appearance.
type Groups struct {
	byEmail map[string]*Invoice
	order   []string
}

// Group builds one invoice per distinct client email. Rows without a mapped
// email are skipped. The first row for an email fixes the client name;
// following rows only add items.
func Group(rows []Row, mapping FieldMapping) *Groups {
	g := &Groups{byEmail: make(map[string]*Invoice)}

	for _, row := range rows {
		email := mapping.Lookup(row, FieldClientEmail)
		if email == "" {
			continue
		}

		inv, ok := g.byEmail[email]
		if !ok {
			inv = &Invoice{
				ClientName:  orDefault(mapping.Lookup(row, FieldClientName), DefaultClientName),
				ClientEmail: email,
				Items:       []Item{},
			}
			g.byEmail[email] = inv
			g.order = append(g.order, email)
		}

		amount := mapping.Lookup(row, FieldAmount)
		inv.Items = append(inv.Items, Item{
			Description: orDefault(mapping.Lookup(row, FieldDescription), "Item"),
			Quantity:    orDefault(mapping.Lookup(row, FieldQuantity), "1"),
			UnitPrice:   orDefault(mapping.Lookup(row, FieldUnitPrice), orDefault(amount, "0")),
			Amount:      orDefault(amount, "0"),
		})
	}

	return g
}

// Len returns the number of distinct clients.
func (g *Groups) Len() int {
	return len(g.order)
}

// Get returns the invoice for a client email.
func (g *Groups) Get(email string) (*Invoice, bool) {
	inv, ok := g.byEmail[email]
	return inv, ok
}

// Invoices returns the invoices in order of first appearance.
func (g *Groups) Invoices() []*Invoice {
	out := make([]*Invoice, 0, len(g.order))
	for _, email := range g.order {
		out = append(out, g.byEmail[email])
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
