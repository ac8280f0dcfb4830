// Package normalize holds the price and image-path helpers shared by the
// storefront cart and the checkout page.
package normalize

import (
	"math"
	"strconv"
	"strings"
)

// CurrencySuffix is appended to every displayed amount.
const CurrencySuffix = " $"

// ParsePrice reads every digit in text as one integer. Separators, currency
// symbols and decimal points are dropped alike, so "$ 12.345" is 12345.
func ParsePrice(text string) int64 {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// RoundPrice converts a JSON number into the integer price unit.
func RoundPrice(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int64(math.Round(f))
}

// FormatThousands groups digits by three from the right using a space.
func FormatThousands(n int64) string {
	sign := ""
	u := uint64(n)
	if n < 0 {
		sign = "-"
		u = uint64(-n)
	}
	s := strconv.FormatUint(u, 10)
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.Grow(len(sign) + len(s) + len(s)/3)
	b.WriteString(sign)
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatCurrency renders n as "24 500 $".
func FormatCurrency(n int64) string {
	return FormatThousands(n) + CurrencySuffix
}
