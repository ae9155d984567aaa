package render

import "github.com/tuanzi-labs/ordersheet-backend/pkg/i18n"

// Anchor is a horizontal text anchor within a cell.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorCenter Anchor = "center"
	AnchorEnd    Anchor = "end"
)

// ColumnSpec fixes one column's title key, relative width weight and anchor.
type ColumnSpec struct {
	TitleKey string
	Weight   float64
	Anchor   Anchor
}

// Layout is the six-column table layout in display order. Pixel widths are
// derived as weight over the sum of all weights.
var Layout = []ColumnSpec{
	{TitleKey: i18n.KeySeqCol, Weight: 1, Anchor: AnchorCenter},
	{TitleKey: i18n.KeyImageCol, Weight: 2.5, Anchor: AnchorCenter},
	{TitleKey: i18n.KeyDescCol, Weight: 5, Anchor: AnchorStart},
	{TitleKey: i18n.KeyPriceCol, Weight: 2, Anchor: AnchorCenter},
	{TitleKey: i18n.KeyQtyCol, Weight: 1.5, Anchor: AnchorCenter},
	{TitleKey: i18n.KeyTotalCol, Weight: 2, Anchor: AnchorCenter},
}

// Column is a resolved column: localized title plus its layout spec.
type Column struct {
	Title  string
	Weight float64
	Anchor Anchor
}

// Columns resolves the layout against the localization table.
func Columns(lang string) []Column {
	cols := make([]Column, 0, len(Layout))
	for _, spec := range Layout {
		cols = append(cols, Column{
			Title:  i18n.T(spec.TitleKey, lang),
			Weight: spec.Weight,
			Anchor: spec.Anchor,
		})
	}
	return cols
}

func columnWidths(cols []Column, tableWidth float64) []float64 {
	var sum float64
	for _, c := range cols {
		sum += c.Weight
	}
	widths := make([]float64, len(cols))
	for i, c := range cols {
		widths[i] = c.Weight / sum * tableWidth
	}
	return widths
}
