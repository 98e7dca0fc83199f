package domain

import "math"

// Totals holds the monetary aggregates derived from an invoice's line
// items and adjustment fields.
type Totals struct {
	Subtotal  int64 `json:"subtotal"`
	TaxAmount int64 `json:"tax_amount"`
	Total     int64 `json:"total"`
}

// ComputeTotals derives subtotal, tax and grand total from line items and
// adjustments. It is the single source of truth for the on-screen summary
// and both document renderers: pure, no I/O, identical inputs always
// produce identical outputs.
//
//	subtotal = sum(item.Total)
//	tax      = round(subtotal * taxPercent / 100)
//	total    = subtotal + tax - discount + underpayment
//
// A discount larger than subtotal+tax is accepted and drives the total
// negative; that is a product decision, not an input error.
func ComputeTotals(items []LineItem, taxPercent float64, discount, underpayment int64) (Totals, error) {
	if taxPercent < 0 || taxPercent > 100 {
		return Totals{}, ErrInvalidTaxPercent
	}
	if discount < 0 {
		return Totals{}, ErrInvalidDiscount
	}
	if underpayment < 0 {
		return Totals{}, ErrInvalidUnderpay
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.Total
	}

	// Tax rounds to the nearest whole unit, matching the currency
	// formatter: this domain has no fractional subunits.
	taxAmount := int64(math.Round(float64(subtotal) * taxPercent / 100))

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal + taxAmount - discount + underpayment,
	}, nil
}
