// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatMoney formats a currency amount with separators, rounded to whole
// units once it reaches 1,000.
// e.g., (12345.6, "¥") -> "¥12,346", (12.5, "$") -> "$12.50"
func FormatMoney(d decimal.Decimal, currency string) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	if d.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return sign + currency + FormatNumber(d.Round(0).IntPart())
	}
	return sign + currency + d.StringFixed(2)
}

// FormatMoneyFloat is FormatMoney for float amounts.
func FormatMoneyFloat(f float64, currency string) string {
	return FormatMoney(decimal.NewFromFloat(f), currency)
}

// FormatAmount formats a count that may be fractional.
// e.g., 12 -> "12", 2.5 -> "2.5", 1234.0 -> "1,234"
func FormatAmount(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return FormatNumber(int64(f))
	}
	if math.Abs(f) >= 1000 {
		return FormatNumber(int64(math.Round(f)))
	}
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// FormatPercent formats a percentage already on the 0-100 scale.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDelta formats the change from previous to current as a signed
// percentage, or "new" when previous is zero and current is not.
func FormatDelta(current, previous float64) string {
	if previous == 0 {
		if current == 0 {
			return "0.0%"
		}
		return "new"
	}
	change := (current - previous) / previous * 100
	if change >= 0 {
		return "+" + FormatPercent(change)
	}
	return FormatPercent(change)
}

// FormatDays formats a whole number of days.
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// FormatDayOfWeek returns a 3-letter day abbreviation.
func FormatDayOfWeek(d time.Weekday) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if d >= 0 && int(d) < len(days) {
		return days[d]
	}
	return "???"
}
