// Package money formats monetary amounts held as integer minor units.
//
// Amounts are stored and compared exclusively as int64 minor units (cents);
// conversion to a display string happens only when composing user-facing text.
package money

import "fmt"

// FormatMinorUnits renders an amount of minor units as a display amount.
// Whole amounts drop the fractional part: 150000 -> "1500", 150050 -> "1500.50".
func FormatMinorUnits(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	major := amount / 100
	minor := amount % 100

	var s string
	if minor == 0 {
		s = fmt.Sprintf("%d", major)
	} else {
		s = fmt.Sprintf("%d.%02d", major, minor)
	}
	if negative {
		return "-" + s
	}
	return s
}

// Format renders an amount with its currency code, e.g. "1500 USD".
func Format(amount int64, currency string) string {
	return FormatMinorUnits(amount) + " " + currency
}
