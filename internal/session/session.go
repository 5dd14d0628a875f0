// Package session issues and verifies signed session tokens carrying the
// user id. Tokens are value.expiry.signature with an HMAC-SHA256 signature,
// so the server stays stateless.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTTL is how long an issued session stays valid.
const DefaultTTL = 30 * 24 * time.Hour

var (
	// ErrInvalidToken is returned for malformed or tampered tokens.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrExpired is returned when a token's expiry has passed.
	ErrExpired = errors.New("session expired")
)

// Manager signs and verifies session tokens with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret), ttl: DefaultTTL, now: time.Now}
}

// Issue creates a signed token for the given user id.
func (m *Manager) Issue(userID string) string {
	expiry := m.now().Add(m.ttl).Unix()
	payload := fmt.Sprintf("%s.%d", encode(userID), expiry)
	return payload + "." + m.sign(payload)
}

// Verify checks a token's signature and expiry and returns the user id.
func (m *Manager) Verify(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", ErrInvalidToken
	}
	payload := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(m.sign(payload)), []byte(parts[2])) {
		return "", ErrInvalidToken
	}

	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	if m.now().Unix() > expiry {
		return "", ErrExpired
	}

	userID, err := decode(parts[0])
	if err != nil {
		return "", ErrInvalidToken
	}
	return userID, nil
}

func (m *Manager) sign(payload string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func encode(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func decode(s string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
