package identity

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// returns a random 6-digit verification code.
// Collisions across rows are acceptable: the code is scoped to one
// pending signup and expires within a day.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// returns a 32-byte cryptographically random reset token, hex-encoded
func generateResetToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}
