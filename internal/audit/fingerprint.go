package audit

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/govproof/govproof/internal/models"
)

// Fingerprint hashes the canonical JSON form of a verification result.
// The generation timestamp is excluded so two runs over identical input
// fingerprint identically.
func Fingerprint(result *models.VerificationResult) (string, error) {
	if result == nil {
		return "", nil
	}
	stripped := *result
	stripped.GeneratedAt = time.Time{}

	canonical, err := CanonicalizeJSON(&stripped)
	if err != nil {
		return "", fmt.Errorf("canonicalize verification result: %w", err)
	}
	hash := sha256.Sum256(canonical)
	return fmt.Sprintf("sha256:%x", hash), nil
}

// HashString sha256
func HashString(s string) string {
	hash := sha256.Sum256([]byte(s))
	return fmt.Sprintf("sha256:%x", hash)
}
