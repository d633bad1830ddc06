// Package money formatea montos para documentos impresos (comprobantes, planillas).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Spanish)

// Format devuelve el monto con separador de miles y dos decimales, ej: "Bs 1.234,50".
func Format(d decimal.Decimal) string {
	return "Bs " + Number(d)
}

// Number como Format pero sin símbolo.
func Number(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}
