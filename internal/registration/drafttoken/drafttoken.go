// Package drafttoken signs and verifies the registration draft cookie.
package drafttoken

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer = "galien-web"
	// DefaultTTL bounds how long an abandoned draft stays resumable.
	DefaultTTL = 7 * 24 * time.Hour
)

var (
	// ErrInvalid reports a malformed, tampered or expired token.
	ErrInvalid = errors.New("draft token is invalid")
	// ErrSecretRequired reports a codec built without key material.
	ErrSecretRequired = errors.New("draft token secret is required")
)

// Codec issues HS256 tokens whose subject is the draft id.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a codec. A non-positive ttl selects DefaultTTL.
func NewCodec(secret []byte, ttl time.Duration, now func() time.Time) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrSecretRequired
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Codec{secret: append([]byte(nil), secret...), ttl: ttl, now: now}, nil
}

// TTL returns the token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Sign returns a token for draftID.
func (c *Codec) Sign(draftID string) (string, error) {
	draftID = strings.TrimSpace(draftID)
	if draftID == "" {
		return "", errors.New("draft id is required")
	}
	now := c.now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   draftID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign draft token: %w", err)
	}
	return signed, nil
}

// Verify returns the draft id carried by token.
func (c *Codec) Verify(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalid
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", fmt.Errorf("%w: subject is required", ErrInvalid)
	}
	return claims.Subject, nil
}
