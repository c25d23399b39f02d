package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney renders amount in the currency's own notation, rounded to its minor unit
func FormatMoney(amount decimal.Decimal, currency string) string {
	// money.New never returns a nil currency, unknown codes get a generic one
	cur := money.New(0, currency).Currency()
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
