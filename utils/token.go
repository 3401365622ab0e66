package utils

import (
	"crypto/rand"
	"math/big"
)

// GenerateResetCode returns a numeric code of the given length, suitable for
// the emailed password-reset flow.
func GenerateResetCode(length int) string {
	const digits = "0123456789"
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			code[i] = '0'
			continue
		}
		code[i] = digits[n.Int64()]
	}
	return string(code)
}
