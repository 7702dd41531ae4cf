package parcel

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// formatFixed rounds d half away from zero to places decimals, then renders
// it with thousands grouping: 0.0625 at 3 places is "0.063", 1234.5 at 2 is
// "1,234.50". The rounding is done in decimal; the printer only groups an
// already-rounded value.
func formatFixed(d decimal.Decimal, places int32) string {
	rounded := d.Round(places)
	return printer.Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(int(places))))
}

// formatPlain renders v with the fewest digits that round-trip, e.g. 12.5 or 30
func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
