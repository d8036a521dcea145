package commands

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// formatAmount renders a decimal amount with the configured currency's
// symbol and grouping.
func formatAmount(d decimal.Decimal, currencyCode string) string {
	cur := money.New(0, currencyCode).Currency()
	minor := d.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
