package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// GenerateKey generates a random key with the given prefix.
// Format: prefix_randomhex
// Example: mw_worker_a1b2c3d4e5f6...
func GenerateKey(prefix string) (string, error) {
	b := make([]byte, 16) // 32 char hex
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b)), nil
}

// GenerateWorkerKey generates a worker login key: mw_worker_xxx
func GenerateWorkerKey() (string, error) {
	return GenerateKey("mw_worker")
}

// GenerateWorkerSecret generates the secret handed out once at worker
// creation: mw_secret_xxx
func GenerateWorkerSecret() (string, error) {
	return GenerateKey("mw_secret")
}

// GenerateVerificationCode generates a 6-digit numeric verification code
// sent to a newly registered institution.
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
