package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// resetTokenBytes is the entropy of a password-reset secret.
const resetTokenBytes = 32

// ResetToken is a freshly generated password-reset secret. Only the Hash is
// persisted; the Raw value goes to the user through an out-of-band channel
// and is never stored.
type ResetToken struct {
	Raw     string
	Hash    string
	Expires time.Time
}

// NewResetToken generates a high-entropy reset secret with the given
// lifetime. The stored side is the SHA-256 digest of the raw value, so a
// database leak does not expose usable secrets.
func NewResetToken(lifetime time.Duration) (*ResetToken, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	raw := hex.EncodeToString(buf)
	return &ResetToken{
		Raw:     raw,
		Hash:    HashResetToken(raw),
		Expires: time.Now().UTC().Add(lifetime),
	}, nil
}

// HashResetToken computes the stored digest of a raw reset secret. Used at
// redeem time to look the user up by the secret they present.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
