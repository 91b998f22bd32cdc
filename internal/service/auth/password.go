package auth

import "golang.org/x/crypto/bcrypt"

// BcryptCost is the hashing work factor applied to every stored password.
const BcryptCost = 12

// HashPassword hashes a plaintext password with bcrypt at BcryptCost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// PasswordVerifier checks a plaintext password against a stored hash.
// Handlers depend on the interface so tests can skip the bcrypt work.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier is the production PasswordVerifier.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements PasswordVerifier.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
