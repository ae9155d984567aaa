package sheet

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one product row. UnitPrice and Quantity hold the verbatim text
// the editing surface handed back; Total is derived from them on every
// recompute and is never edited directly. Image bytes are owned exclusively
// by the row.
type LineItem struct {
	ID          uuid.UUID
	Seq         int
	Description string
	UnitPrice   string
	Quantity    string
	Total       decimal.Decimal
	Image       []byte
}

// Label composes the display label used by the upload selector.
func (it *LineItem) Label() string {
	return fmt.Sprintf("%d. %s", it.Seq, it.Description)
}

// OrderSheet is the full editable state of one session: ordered rows plus the
// two scalar settings. It is mutated in place and never persisted.
type OrderSheet struct {
	Items       []*LineItem
	TaxRate     decimal.Decimal
	ShippingFee decimal.Decimal
}

// BillingSummary is a pure view over an OrderSheet, recomputed per access.
type BillingSummary struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

type seedRow struct {
	description string
	unitPrice   string
	quantity    string
}

var seedRows = []seedRow{
	{description: "黑色钢琴玩偶(KAKA)", unitPrice: "69.0", quantity: "5"},
	{description: "黄色钢琴玩偶(YUki)", unitPrice: "59.0", quantity: "5"},
	{description: "大提琴地毯", unitPrice: "89.0", quantity: "5"},
}

// NewOrderSheet builds a fresh session sheet. With seed enabled it carries
// the three example rows new sessions start from.
func NewOrderSheet(taxRate decimal.Decimal, seed bool) *OrderSheet {
	s := &OrderSheet{
		TaxRate:     taxRate,
		ShippingFee: decimal.Zero,
	}
	if seed {
		for i, row := range seedRows {
			s.Items = append(s.Items, &LineItem{
				ID:          uuid.New(),
				Seq:         i + 1,
				Description: row.description,
				UnitPrice:   row.unitPrice,
				Quantity:    row.quantity,
			})
		}
		CalcTotals(s)
	}
	return s
}
