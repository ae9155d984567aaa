package sheet

// RowView is the JSON shape of one line item. Image bytes never leave the
// session; clients only learn whether a row has one attached.
type RowView struct {
	ID          string `json:"id"`
	Seq         int    `json:"seq"`
	Description string `json:"description"`
	UnitPrice   string `json:"unit_price"`
	Quantity    string `json:"quantity"`
	Total       string `json:"total"`
	HasImage    bool   `json:"has_image"`
}

type SummaryView struct {
	Subtotal   string `json:"subtotal"`
	Tax        string `json:"tax"`
	GrandTotal string `json:"grand_total"`
}

type View struct {
	Rows        []RowView   `json:"rows"`
	TaxRate     string      `json:"tax_rate"`
	ShippingFee string      `json:"shipping_fee"`
	Summary     SummaryView `json:"summary"`
}

func newView(s *OrderSheet) *View {
	CalcTotals(s)
	summary := Summarize(s)

	rows := make([]RowView, 0, len(s.Items))
	for _, it := range s.Items {
		rows = append(rows, RowView{
			ID:          it.ID.String(),
			Seq:         it.Seq,
			Description: it.Description,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Total:       it.Total.StringFixed(2),
			HasImage:    len(it.Image) > 0,
		})
	}

	return &View{
		Rows:        rows,
		TaxRate:     s.TaxRate.String(),
		ShippingFee: s.ShippingFee.StringFixed(2),
		Summary: SummaryView{
			Subtotal:   summary.Subtotal.StringFixed(2),
			Tax:        summary.Tax.StringFixed(2),
			GrandTotal: summary.GrandTotal.StringFixed(2),
		},
	}
}
