package exporter

import (
	"fmt"

	"grantcli/pkg/contracts/domain"
)

// text returns s, or NA when s is empty
func text(s string) string {
	if s == "" {
		return domain.NA
	}
	return s
}

// formatCoordinate writes a coordinate in its shortest form; null is empty
func formatCoordinate(f domain.NullFloat) string {
	return f.Format("")
}

// formatFloat formats a float64 value with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// FormatMoney renders an amount with thousands separators and 2 decimals
func FormatMoney(f float64) string {
	s := formatFloat(f)
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	var out []byte
	for i := range len(whole) {
		if i > 0 && (len(whole)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, whole[i])
	}
	return sign + "$" + string(out) + frac
}
