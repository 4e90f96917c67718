package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// mustHashPassword hashes a plaintext password with the minimum bcrypt cost.
// Test-only helper; production hashing lives in the postgres user store.
func mustHashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}
