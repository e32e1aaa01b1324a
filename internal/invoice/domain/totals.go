package domain

import "github.com/shopspring/decimal"

// Totals is the recomputed monetary summary of an invoice.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Recalculate sums the stored line-item totals and applies the given tax
// rate. An empty item list yields all-zero totals, which is a valid state
// for a draft invoice.
func Recalculate(items []LineItem, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total)
	}

	taxAmount := subtotal.Mul(taxRate).Div(hundred)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount),
	}
}
