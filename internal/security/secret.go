package security

import (
	"crypto/rand"
	"errors"
)

const (
	SecretKeyLength   = 48
	secretKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errBadAlphabet    = errors.New("alphabet must hold between 1 and 256 characters")
)

// NewSecretKey returns a fresh token signing key.
func NewSecretKey() (string, error) {
	return RandomString(SecretKeyLength, secretKeyAlphabet)
}

// RandomString draws length characters uniformly from alphabet using crypto/rand.
// Bytes that would bias the distribution are discarded and redrawn.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", errBadAlphabet
	}
	if length == 0 {
		return "", nil
	}

	size := len(alphabet)
	ceiling := 256 - 256%size
	result := make([]byte, 0, length)
	buffer := make([]byte, length)
	for len(result) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, b := range buffer {
			if int(b) >= ceiling {
				continue
			}
			result = append(result, alphabet[int(b)%size])
			if len(result) == length {
				break
			}
		}
	}
	return string(result), nil
}
