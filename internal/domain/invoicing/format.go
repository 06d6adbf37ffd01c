package invoicing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount formatea un monto con separador de miles y dos decimales, ej. 4,720.00.
func FormatAmount(d decimal.Decimal) string {
	return amountPrinter.Sprintf("%.2f", d.Round(2).InexactFloat64())
}
