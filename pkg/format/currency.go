// Package format renders amounts for display.
package format

import (
	"strconv"

	"github.com/iwvelando/roi-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyFunc is the formatting service injected into the presentation layer.
type CurrencyFunc func(amount float64) string

// EuroSymbol is the only currency the calculator displays.
const EuroSymbol = "€"

// CurrencyFormatter renders whole currency amounts with locale grouping.
type CurrencyFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewCurrencyFormatter returns a formatter grouping digits per tag and suffixing symbol.
func NewCurrencyFormatter(tag language.Tag, symbol string) *CurrencyFormatter {
	return &CurrencyFormatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}
}

// Format rounds amount half away from zero to a whole unit (e.g. "-43 500 €").
// NaN and infinities render as zero.
func (f *CurrencyFormatter) Format(amount float64) string {
	if !mathutil.IsFinite(amount) {
		amount = 0
	}

	whole := decimal.NewFromFloat(amount).Round(0)
	sign := ""
	if whole.IsNegative() {
		sign = "-"
		whole = whole.Abs()
	}

	digits := f.printer.Sprintf("%v", number.Decimal(whole.IntPart()))
	return sign + digits + "\u00a0" + f.symbol
}

var defaultCurrency = NewCurrencyFormatter(language.French, EuroSymbol)

// Currency formats amount as fr-FR euros with zero decimals.
func Currency(amount float64) string {
	return defaultCurrency.Format(amount)
}

// Numeric returns value rounded to decimals followed by suffix (e.g. "2.3 mois").
// Trailing zeros are dropped so whole values render without a fraction.
func Numeric(value float64, decimals int, suffix string) string {
	if !mathutil.IsFinite(value) {
		value = 0
	}
	rounded := mathutil.RoundTo(value, decimals)
	if rounded == 0 {
		rounded = 0 // normalize negative zero
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64) + suffix
}
