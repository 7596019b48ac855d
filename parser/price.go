package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var priceDigitsRe = regexp.MustCompile(`\d+[.,]?\d*`)

// ParsePrice normalizes a raw price-like string into a numeric value.
// Whitespace and currency symbols are ignored; the first digits[.,]digits
// group is used with the comma treated as a decimal point. Returns nil when
// the input carries no digits. A literal zero is a valid price.
func ParsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}

	compact := strings.Join(strings.Fields(raw), "")
	match := priceDigitsRe.FindString(compact)
	if match == "" {
		return nil
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &value
}

// FormatPrice renders a parsed price back to its canonical string form.
// Used by the CSV writer; empty when the price is unknown.
func FormatPrice(price *float64) string {
	if price == nil {
		return ""
	}
	return strconv.FormatFloat(*price, 'f', -1, 64)
}
