package render

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var groupedPrinter = message.NewPrinter(language.English)

// FormatGrouped renders an amount with thousands separators and two
// decimals, the display format of the grand-total summary cell.
func FormatGrouped(d decimal.Decimal) string {
	f, _ := d.Float64()
	return groupedPrinter.Sprintf("%.2f", f)
}
