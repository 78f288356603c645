package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mrivera-dev/carvalue-backend/pkg/config"
	"golang.org/x/crypto/scrypt"
)

// ErrInvalidHash signals a stored password value that is not salt.hexHash.
var ErrInvalidHash = fmt.Errorf("invalid password hash")

// ScryptParams captures the KDF parameters used for hashing and verifying.
type ScryptParams struct {
	N       int
	R       int
	P       int
	SaltLen int
	KeyLen  int
}

// HashPassword derives a key from the password with a freshly generated salt
// and returns "salt.hexHash". The salt is hex-encoded and the derivation runs
// over the encoded form, so the stored prefix is exactly what verification
// feeds back into scrypt.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	params := paramsFromConfig(cfg)
	salt := make([]byte, params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)

	key, err := scrypt.Key([]byte(password), []byte(saltHex), params.N, params.R, params.P, params.KeyLen)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return saltHex + "." + hex.EncodeToString(key), nil
}

// VerifyPassword re-derives the key with the stored salt and compares it to
// the stored hash in constant time.
func VerifyPassword(password, encoded string, cfg config.PasswordConfig) (bool, error) {
	saltHex, storedHex, ok := strings.Cut(encoded, ".")
	if !ok || saltHex == "" || storedHex == "" {
		return false, ErrInvalidHash
	}
	stored, err := hex.DecodeString(storedHex)
	if err != nil {
		return false, ErrInvalidHash
	}

	params := paramsFromConfig(cfg)
	key, err := scrypt.Key([]byte(password), []byte(saltHex), params.N, params.R, params.P, len(stored))
	if err != nil {
		return false, fmt.Errorf("derive key: %w", err)
	}

	return subtle.ConstantTimeCompare(stored, key) == 1, nil
}

func paramsFromConfig(cfg config.PasswordConfig) ScryptParams {
	return ScryptParams{
		N:       defaultInt(cfg.ScryptN, 16384),
		R:       defaultInt(cfg.ScryptR, 8),
		P:       defaultInt(cfg.ScryptP, 1),
		SaltLen: clampInt(defaultInt(cfg.ScryptSaltLen, 8), 8, 64),
		KeyLen:  clampInt(defaultInt(cfg.ScryptKeyLen, 32), 16, 64),
	}
}

func defaultInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
