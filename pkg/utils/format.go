// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"strings"
)

// FormatCurrency formats an amount as dollars with thousands separators.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := groupThousands(parts[0])

	result := "$" + intPart + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts comma separators into an integer string.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	s = s[:n-3]
	for len(s) > 3 {
		result = s[len(s)-3:] + "," + result
		s = s[:len(s)-3]
	}
	return s + "," + result
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatPnL formats P&L with an explicit sign for gains.
func FormatPnL(pnl float64) string {
	formatted := FormatCurrency(pnl)
	if pnl > 0 {
		return "+" + formatted
	}
	return formatted
}

// FormatCompact formats a number in compact form (K/M).
func FormatCompact(amount float64) string {
	abs := amount
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.2fM", amount/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", amount/1_000)
	}
	return FormatCurrency(amount)
}

// FormatRiskReward formats a risk:reward ratio in 1:N form.
func FormatRiskReward(rr float64) string {
	return fmt.Sprintf("1:%.2f", rr)
}
