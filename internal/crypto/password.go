package crypto

import "golang.org/x/crypto/bcrypt"

// work factor for new password hashes
const hashCost = 10

// creates a bcrypt hash from a plaintext password.
// Output differs on every call (fresh salt), verification is deterministic.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// compares a bcrypt hashed password with its possible plaintext equivalent
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
