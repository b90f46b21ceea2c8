package render

import "github.com/finaccosolutions/Document-Draft/pkg/model"

// Totals holds derived invoice amounts before formatting.
type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

func (t InvoiceTotals) compute(data model.Record) (Totals, bool) {
	rows, ok := data.Get(t.LineItems).Rows()
	if !ok {
		return Totals{}, false
	}
	var subtotal float64
	for _, row := range rows {
		subtotal += row.Get(t.Quantity).Float() * row.Get(t.UnitPrice).Float()
	}
	subtotal = model.Finite(subtotal)
	rate := data.Get(t.TaxRate).Float()
	tax := model.Finite(subtotal * (rate / 100))
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     model.Finite(subtotal + tax),
	}, true
}
