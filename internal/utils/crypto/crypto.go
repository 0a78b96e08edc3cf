package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	base64_ "brandbase/internal/utils/base64"
	"brandbase/internal/utils/logger"

	"golang.org/x/crypto/ssh"
)

var log = logger.New("crypto")

var PrivateKey *rsa.PrivateKey
var PublicKey *rsa.PublicKey

// InitializeKeys loads the base64-encoded PEM private key used to encrypt
// provider API keys at rest.
func InitializeKeys(privateKeyEnv string) error {
	log.Info("Initializing keys")

	if privateKeyEnv == "" {
		return errors.New("private key not found")
	}

	privateKeyEnv, err := base64_.DecodeFromBase64(privateKeyEnv)
	if err != nil {
		return fmt.Errorf("failed to decode private key: %w", err)
	}

	key, err := ssh.ParseRawPrivateKey([]byte(privateKeyEnv))
	if err != nil {
		return fmt.Errorf("failed to parse private key: %w", err)
	}

	PrivateKey = key.(*rsa.PrivateKey)
	PublicKey = &PrivateKey.PublicKey
	return nil
}

// Encrypt encrypts a secret (e.g. an AI provider API key) for storage.
func Encrypt(plaintext string) (string, error) {
	if PublicKey == nil {
		return "", errors.New("public key not initialized")
	}

	ciphertext, err := rsa.EncryptOAEP(
		sha256.New(),
		rand.Reader,
		PublicKey,
		[]byte(plaintext),
		nil,
	)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func Decrypt(ciphertext string) (string, error) {
	if PrivateKey == nil {
		return "", errors.New("private key not initialized")
	}

	decodedCiphertext, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	plaintext, err := rsa.DecryptOAEP(
		sha256.New(),
		rand.Reader,
		PrivateKey,
		decodedCiphertext,
		nil,
	)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// ComputeWebhookSignature computes the hex HMAC-SHA256 of a payload.
func ComputeWebhookSignature(requestBody []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(requestBody)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyStripeSignature validates a Stripe-Signature header
// ("t=<unix>,v1=<hex hmac>") against the raw payload. The signed message is
// "<t>.<payload>". Timestamps older than tolerance are rejected to block
// replays.
func VerifyStripeSignature(header string, payload []byte, secret string, tolerance time.Duration) error {
	if header == "" {
		return errors.New("missing signature header")
	}

	var timestamp int64
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid signature timestamp: %w", err)
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return errors.New("malformed signature header")
	}

	if tolerance > 0 {
		age := time.Since(time.Unix(timestamp, 0))
		if age > tolerance || age < -tolerance {
			return errors.New("signature timestamp outside tolerance")
		}
	}

	signed := fmt.Sprintf("%d.%s", timestamp, payload)
	expected := ComputeWebhookSignature([]byte(signed), secret)

	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}

	return errors.New("no matching signature")
}
