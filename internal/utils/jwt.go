package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what a session token asserts about its bearer.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// Claims is the JWT payload: the identity plus registered exp/iat.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Identity returns the identity the claims assert.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email, Role: c.Role}
}

// ErrEmptySecret is returned when signing without a key.
var ErrEmptySecret = errors.New("jwt: empty signing secret")

// TokenSigner issues and checks HS256 session tokens.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenSigner builds a signer from the configured secret and lifetime.
func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	return &TokenSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued tokens.
func (s *TokenSigner) TTL() time.Duration { return s.ttl }

// Sign returns a signed token for id.  On failure the token is "" and the
// error says why; callers must treat an empty token as a failed issue.
func (s *TokenSigner) Sign(id Identity) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrEmptySecret
	}
	now := s.now().UTC()
	claims := Claims{
		UserID: id.UserID,
		Email:  id.Email,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify parses raw and reports whether it is a valid, unexpired token
// signed with this signer's secret.  It never returns an error: every
// failure is simply (nil, false).
func (s *TokenSigner) Verify(raw string) (*Claims, bool) {
	if raw == "" || len(s.secret) == 0 {
		return nil, false
	}
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid || claims.UserID == "" {
		return nil, false
	}
	return claims, true
}
