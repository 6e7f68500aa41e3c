package utils // package utils provides password hashing and session token helpers

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltLen = 16
	keyLen  = 32
)

var b64 = base64.RawStdEncoding

// PasswordHasher hashes passwords with argon2id and encodes them in the
// PHC string format ($argon2id$v=19$m=..,t=..,p=..$salt$hash), the same
// format produced by the reference argon2 CLI and most other libraries.
type PasswordHasher struct {
	memory      uint32 // KiB
	iterations  uint32
	parallelism uint8
}

// NewPasswordHasher returns a hasher with the given cost parameters.
func NewPasswordHasher(memoryKiB, iterations uint32, parallelism uint8) *PasswordHasher {
	return &PasswordHasher{memory: memoryKiB, iterations: iterations, parallelism: parallelism}
}

// Hash derives a salted argon2id hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if h.iterations < 1 || h.parallelism < 1 {
		return "", errors.New("argon2: invalid parameters")
	}
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, h.iterations, h.memory, h.parallelism, keyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.iterations, h.parallelism,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// Verify reports whether password matches encoded.  The cost parameters are
// read from the encoded string, so hashes made with older settings still
// verify.  Any parse failure yields false.
func (h *PasswordHasher) Verify(encoded, password string) bool {
	p, salt, want, err := decodeHash(encoded)
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(password), salt, p.iterations, p.memory, p.parallelism, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

func decodeHash(encoded string) (PasswordHasher, []byte, []byte, error) {
	var p PasswordHasher
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, errors.New("argon2: not an argon2id hash")
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, errors.New("argon2: unsupported version")
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, nil, nil, fmt.Errorf("argon2: bad parameters: %w", err)
	}
	// argon2.IDKey panics on a zero thread count
	if p.iterations < 1 || p.parallelism < 1 || p.memory < 8*uint32(p.parallelism) {
		return p, nil, nil, errors.New("argon2: parameters out of range")
	}
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, err
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, errors.New("argon2: bad hash")
	}
	return p, salt, key, nil
}
