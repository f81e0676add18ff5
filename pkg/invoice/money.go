package invoice

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads the numeric prefix of s, so "12.5kg" yields 12.5.
// It reports false when s does not start with a number or the number is
// outside the float64 range. Values too small for a float64 read as zero.
func ParseNumber(s string) (decimal.Decimal, bool) {
	m := strings.TrimSuffix(leadingNumber.FindString(strings.TrimSpace(s)), ".")
	if m == "" {
		return decimal.Zero, false
	}

	f, err := strconv.ParseFloat(m, 64)
	if math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	if f == 0 {
		return decimal.Zero, true
	}
	if err != nil {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatMoney renders an amount with a dollar sign and two decimals.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
