package dashboard

import (
	"strconv"
	"strings"
)

// FormatCurrency formats whole dollars with comma separators: "$47,000".
// Halves round to even.
func FormatCurrency(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 0, 64)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	if len(s) > 3 {
		var b strings.Builder
		lead := len(s) % 3
		if lead > 0 {
			b.WriteString(s[:lead])
		}
		for i := lead; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}

	if negative && s != "0" {
		return "-$" + s
	}
	return "$" + s
}

// FormatYears formats a year count with one decimal: "20.0 yrs".
func FormatYears(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + " yrs"
}

// FormatPercent formats a percentage with one decimal: "50.0%".
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
