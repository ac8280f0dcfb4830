package validation

import (
	"regexp"
	"strings"
)

type Brand string

const (
	Visa       Brand = "Visa"
	MasterCard Brand = "MasterCard"
	Amex       Brand = "American Express"
	Discover   Brand = "Discover"
	Unknown    Brand = "Desconocida"
)

var brandPrefixes = []struct {
	brand Brand
	re    *regexp.Regexp
}{
	{Visa, regexp.MustCompile(`^4`)},
	{MasterCard, regexp.MustCompile(`^(5[1-5]|2(2[2-9]|[3-6]\d|7[01]|720))`)},
	{Amex, regexp.MustCompile(`^3[47]`)},
	{Discover, regexp.MustCompile(`^(6011|65|64[4-9])`)},
}

// CardBrand detects the card network from the leading digits.
func CardBrand(number string) Brand {
	n := strings.Join(strings.Fields(number), "")
	for _, p := range brandPrefixes {
		if p.re.MatchString(n) {
			return p.brand
		}
	}
	return Unknown
}

// Accepts reports whether number is all digits with a length the brand
// issues. Any length from 13 to 19 is accepted for an unknown brand.
func (b Brand) Accepts(number string) bool {
	if !digitRe.MatchString(number) {
		return false
	}
	n := len(number)
	if n < 13 || n > 19 {
		return false
	}
	switch b {
	case Amex:
		return n == 15
	case Visa:
		return n == 13 || n == 16 || n == 19
	case MasterCard, Discover:
		return n == 16
	default:
		return true
	}
}

// Luhn runs the mod-10 checksum over the digits of number. Inputs with a
// non-digit or fewer than two digits fail.
func Luhn(number string) bool {
	if len(number) < 2 {
		return false
	}
	sum := 0
	alt := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		n := int(c - '0')
		if alt {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		alt = !alt
	}
	return sum%10 == 0
}

// FormatCardNumber groups the digits of raw the way the card prints them:
// 4-6-5 for American Express, 4-4-4-4 otherwise. Extra digits are dropped.
func FormatCardNumber(raw string) string {
	digits := nonDig.ReplaceAllString(raw, "")
	groups := []int{4, 4, 4, 4}
	if CardBrand(digits) == Amex {
		groups = []int{4, 6, 5}
	}
	return group(digits, groups)
}

// MaskPhone spaces a mobile number as 2-4-4 with any remainder appended.
func MaskPhone(v string) string {
	d := nonDig.ReplaceAllString(v, "")
	var out string
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 6:
		out = group(d, []int{2, 4})
	case len(d) <= 10:
		out = group(d, []int{2, 4, 4})
	default:
		out = group(d, []int{2, 4, 4, len(d)})
	}
	if len(out) > 20 {
		out = out[:20]
	}
	return out
}

// MaskDNI keeps at most ten digits.
func MaskDNI(v string) string {
	d := nonDig.ReplaceAllString(v, "")
	if len(d) > 10 {
		d = d[:10]
	}
	return d
}

func group(digits string, sizes []int) string {
	var parts []string
	for _, n := range sizes {
		if digits == "" {
			break
		}
		n = min(n, len(digits))
		parts = append(parts, digits[:n])
		digits = digits[n:]
	}
	return strings.Join(parts, " ")
}
