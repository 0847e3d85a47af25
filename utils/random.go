package utils

import (
	"crypto/rand"
	"math/big"
)

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSecureRandomString kriptografik rastgele, URL-safe bir anahtar üretir.
// Paylaşım anahtarları ve tek kullanımlık token'lar için kullanılır.
func GenerateSecureRandomString(length int) (string, error) {
	if length <= 0 {
		length = 20
	}
	result := make([]byte, length)
	max := big.NewInt(int64(len(keyAlphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		result[i] = keyAlphabet[n.Int64()]
	}
	return string(result), nil
}
