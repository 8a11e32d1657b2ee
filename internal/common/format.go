package common

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount formats an integer with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatMoney renders a dollar amount compactly: $1.2B, $3.4M, or $12,345.
func FormatMoney(amount float64) string {
	switch {
	case amount >= 1_000_000_000:
		return printer.Sprintf("$%.1fB", amount/1_000_000_000)
	case amount >= 1_000_000:
		return printer.Sprintf("$%.1fM", amount/1_000_000)
	default:
		return printer.Sprintf("$%.0f", amount)
	}
}

// FormatMoneyOrDash is FormatMoney for table cells, with "-" for zero.
func FormatMoneyOrDash(amount float64) string {
	if amount <= 0 {
		return "-"
	}
	return FormatMoney(amount)
}

// FormatPercent renders a 0-100 share with one decimal place.
func FormatPercent(pct float64) string {
	return printer.Sprintf("%.1f%%", pct)
}
