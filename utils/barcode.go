package utils

import (
	"errors"
	"strings"
)

// NormalizeBarcode strips everything but digits and validates the result is a
// plausible UPC/EAN (8 to 14 digits). Invalid input is rejected before any
// database or network work happens.
func NormalizeBarcode(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < 8 || len(digits) > 14 {
		return "", errors.New("barcode must be 8-14 digits")
	}
	return digits, nil
}
