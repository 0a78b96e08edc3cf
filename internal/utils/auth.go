package utils

import (
	"crypto/rand"
	"fmt"
)

// GenerateRandomString generates a random string of specified length using crypto/rand
func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)

	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random string: %w", err)
	}

	for i := 0; i < length; i++ {
		b[i] = charset[b[i]%byte(len(charset))]
	}

	return string(b), nil
}

// GenerateVoucherCode produces an uppercase code suitable for sharing in a
// marketing email.
func GenerateVoucherCode(prefix string, length int) (string, error) {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no lookalikes
	b := make([]byte, length)

	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate voucher code: %w", err)
	}

	for i := 0; i < length; i++ {
		b[i] = charset[b[i]%byte(len(charset))]
	}

	if prefix == "" {
		return string(b), nil
	}
	return fmt.Sprintf("%s-%s", prefix, string(b)), nil
}
