// Package pricing computes the itemized monetary breakdown for an offer:
// base price, selected add-on services, discount and tax. All arithmetic is
// decimal-based so repeated recalculation never drifts.
package pricing

import "github.com/shopspring/decimal"

const DefaultCurrency = "CHF"

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// AddOnSelection is one add-on service attached to an offer. Entries with
// Selected=false stay on the record for display but contribute nothing to
// the totals. Referential integrity of ServiceID is the caller's concern.
type AddOnSelection struct {
	ServiceID string          `json:"serviceId"`
	Selected  bool            `json:"selected"`
	Price     decimal.Decimal `json:"price"`
}

type Discount struct {
	Amount decimal.Decimal `json:"amount"`
	Kind   DiscountKind    `json:"kind"`
}

// Breakdown is the full pricing record stored on an offer. It is always
// replaced wholesale, never patched field by field.
type Breakdown struct {
	BasePrice    decimal.Decimal `json:"basePrice"`
	AddOnsTotal  decimal.Decimal `json:"additionalServicesTotal"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	DiscountKind DiscountKind    `json:"discountType"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	TaxAmount    decimal.Decimal `json:"taxAmount"`
	Total        decimal.Decimal `json:"total"`
	Currency     string          `json:"currency"`
	TaxIncluded  bool            `json:"includeTax"`
}

var hundred = decimal.NewFromInt(100)

// Compute derives the breakdown for the given inputs:
//
//	subtotal = basePrice + Σ price of selected add-ons
//	discount = subtotal * amount/100 (percentage) or amount (fixed), clamped
//	           so the discounted subtotal never goes below zero
//	tax      = discounted subtotal * taxRate/100 when tax is enabled
//
// The tax rate and enabled flag are passed in explicitly; callers resolve
// them from company settings once per request.
func Compute(basePrice decimal.Decimal, addOns []AddOnSelection, discount Discount, taxRate decimal.Decimal, taxEnabled bool) Breakdown {
	addOnsTotal := decimal.Zero
	for _, addOn := range addOns {
		if addOn.Selected {
			addOnsTotal = addOnsTotal.Add(addOn.Price)
		}
	}

	subtotal := basePrice.Add(addOnsTotal)

	if discount.Kind == "" {
		discount.Kind = DiscountPercentage
	}

	discountAmount := decimal.Zero
	if discount.Amount.IsPositive() {
		switch discount.Kind {
		case DiscountFixed:
			discountAmount = discount.Amount
		default:
			discountAmount = subtotal.Mul(discount.Amount).Div(hundred)
		}
	}

	afterDiscount := subtotal.Sub(discountAmount)
	if afterDiscount.IsNegative() {
		afterDiscount = decimal.Zero
	}

	taxAmount := decimal.Zero
	if taxEnabled {
		taxAmount = afterDiscount.Mul(taxRate).Div(hundred)
	}

	return Breakdown{
		BasePrice:    basePrice,
		AddOnsTotal:  addOnsTotal,
		Subtotal:     subtotal,
		Discount:     discount.Amount,
		DiscountKind: discount.Kind,
		TaxRate:      taxRate,
		TaxAmount:    taxAmount,
		Total:        afterDiscount.Add(taxAmount),
		Currency:     DefaultCurrency,
		TaxIncluded:  taxEnabled,
	}
}
