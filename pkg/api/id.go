package api

import (
	"crypto/rand"
	"math/big"
	"regexp"
)

const (
	idLength = 24
	charset  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	conversionIDPrefix = "conv_"
)

var conversionIDPattern = regexp.MustCompile(`^conv_[a-zA-Z0-9]{24}$`)

// NewConversionID generates a new conversion ID with the "conv_" prefix
// followed by 24 cryptographically random alphanumeric characters.
func NewConversionID() string {
	return conversionIDPrefix + randomAlphanumeric(idLength)
}

// ValidateConversionID checks whether the given string is a valid
// conversion ID (matches "conv_" + 24 alphanumeric characters).
func ValidateConversionID(id string) bool {
	return conversionIDPattern.MatchString(id)
}

func randomAlphanumeric(n int) string {
	max := big.NewInt(int64(len(charset)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		b[i] = charset[idx.Int64()]
	}
	return string(b)
}
