package sheet

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CalcTotals rederives every row's total from its raw price and quantity.
// Idempotent; rows whose fields fail coercion get a zero total instead of an
// error.
func CalcTotals(s *OrderSheet) {
	for _, it := range s.Items {
		it.Total = rowTotal(it.UnitPrice, it.Quantity)
	}
}

// Summarize computes the billing view from the raw row fields, so it never
// depends on a stale Total.
func Summarize(s *OrderSheet) BillingSummary {
	subtotal := decimal.Zero
	for _, it := range s.Items {
		subtotal = subtotal.Add(rowTotal(it.UnitPrice, it.Quantity))
	}
	tax := subtotal.Mul(s.TaxRate)
	return BillingSummary{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal.Add(tax).Add(s.ShippingFee),
	}
}

// CoercePrice parses a raw unit price, defaulting to zero on failure.
func CoercePrice(raw string) decimal.Decimal {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return price
}

func rowTotal(rawPrice, rawQty string) decimal.Decimal {
	price, err := decimal.NewFromString(strings.TrimSpace(rawPrice))
	if err != nil {
		return decimal.Zero
	}
	qty, err := strconv.Atoi(strings.TrimSpace(rawQty))
	if err != nil {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(qty)))
}
