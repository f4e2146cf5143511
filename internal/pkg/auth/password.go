package auth

import (
	passwordvalidator "github.com/wagslane/go-password-validator"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used for password hashes
const BcryptCost = 12

// PasswordMinEntropyBits is the minimum entropy accepted at registration
const PasswordMinEntropyBits = 50

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a plaintext password against a bcrypt hash
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// ValidatePasswordStrength rejects passwords below the minimum entropy
func ValidatePasswordStrength(password string) error {
	return passwordvalidator.Validate(password, PasswordMinEntropyBits)
}
