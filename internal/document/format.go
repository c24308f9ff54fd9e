package document

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// currencyBehavior defines how a currency code is rendered: symbol, symbol
// placement and whether a space separates symbol and amount. Amounts always
// use es-ES separators (thousands ".", decimals ",") with 2 fraction digits.
type currencyBehavior struct {
	symbol string
	right  bool
	space  bool
}

var currencyBehaviors = map[string]currencyBehavior{
	"EUR": {symbol: "€", right: true, space: true},
	"VES": {symbol: "Bs", right: true, space: true},
	"USD": {symbol: "$", right: false, space: false},
}

// FormatCurrency renders an amount with es-ES separators and the symbol of
// the given ISO code. Unknown codes fall back to the code itself as a suffix.
func FormatCurrency(amount decimal.Decimal, code string) string {
	behavior, ok := currencyBehaviors[strings.ToUpper(code)]
	if !ok {
		behavior = currencyBehavior{symbol: strings.ToUpper(code), right: true, space: true}
	}

	formatted := FormatNumber(amount)
	sep := ""
	if behavior.space {
		sep = " "
	}
	if behavior.right {
		return formatted + sep + behavior.symbol
	}
	return behavior.symbol + sep + formatted
}

// FormatNumber renders a decimal with exactly 2 fraction digits, "." as the
// thousands separator and "," as the decimal separator.
func FormatNumber(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// FormatPercent renders a percentage with 2 fraction digits and a "%" suffix.
func FormatPercent(pct decimal.Decimal) string {
	return FormatNumber(pct) + "%"
}

// FormatRate renders an exchange rate as "NN,NN Bs/€".
func FormatRate(rate decimal.Decimal) string {
	return FormatNumber(rate) + " Bs/€"
}

// FormatDate renders a date as two-digit day/month and four-digit year.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatTimestamp renders a full generation timestamp.
func FormatTimestamp(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}
