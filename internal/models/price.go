package models

import (
	"strconv"
	"strings"
	"unicode"
)

type Price struct {
	Base        float64
	Shipping    float64
	Tax         float64
	Discounts   float64
	Total       float64
	Currency    string
	TotalString string
}

// ParsePrice splits a vendor price string ("$1,299.99", "549.00 €") into a
// numeric amount and the currency glyphs around it. Empty input parses to
// zero with no error; digits and separators feed the number, everything
// else (minus spaces and plus signs) is treated as currency.
func ParsePrice(price string) (float64, string, error) {
	price = strings.TrimSpace(price)
	if price == "" {
		return 0, "", nil
	}

	var currency, number strings.Builder
	for _, char := range price {
		switch {
		case char == ' ' || char == '+':
			// ignored
		case char == '.' || char == ',':
			number.WriteByte('.')
		case unicode.IsDigit(char):
			number.WriteRune(char)
		default:
			currency.WriteRune(char)
		}
	}

	amount, err := strconv.ParseFloat(number.String(), 64)
	if err != nil {
		return 0, "", err
	}
	return amount, currency.String(), nil
}
