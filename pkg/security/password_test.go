package security

import (
	"strings"
	"testing"

	"github.com/mrivera-dev/carvalue-backend/pkg/config"
)

func TestHashPasswordFormat(t *testing.T) {
	encoded, err := HashPassword("secret", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if encoded == "secret" || strings.Contains(encoded, "secret") {
		t.Fatalf("stored value must not contain the plaintext: %q", encoded)
	}

	salt, hash, ok := strings.Cut(encoded, ".")
	if !ok || salt == "" || hash == "" {
		t.Fatalf("expected salt.hexHash, got %q", encoded)
	}
	// 8-byte salt and 32-byte key, both hex encoded.
	if len(salt) != 16 {
		t.Fatalf("expected 16 hex chars of salt, got %d", len(salt))
	}
	if len(hash) != 64 {
		t.Fatalf("expected 64 hex chars of key, got %d", len(hash))
	}
}

func TestHashPasswordSaltsAreUnique(t *testing.T) {
	first, err := HashPassword("secret", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("secret", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("identical passwords must hash differently across calls")
	}
}

func TestVerifyPasswordRoundTrip(t *testing.T) {
	cfg := config.PasswordConfig{}
	encoded, err := HashPassword("correct horse", cfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := VerifyPassword("correct horse", encoded, cfg)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}

	ok, err = VerifyPassword("wrong horse", encoded, cfg)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("expected mismatched password to fail")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	cfg := config.PasswordConfig{}
	for _, encoded := range []string{"", "no-dot", ".", "salt.", ".hash", "salt.not-hex"} {
		if _, err := VerifyPassword("whatever", encoded, cfg); err == nil {
			t.Fatalf("expected error for malformed hash %q", encoded)
		}
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("", config.PasswordConfig{}); err == nil {
		t.Fatal("expected error for empty password")
	}
}
