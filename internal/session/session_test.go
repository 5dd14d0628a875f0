package session

import (
	"strings"
	"testing"
	"time"
)

func fixedManager(secret string, now time.Time) *Manager {
	m := NewManager(secret)
	m.now = func() time.Time { return now }
	return m
}

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret")

	token := m.Issue("user-123")
	userID, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != "user-123" {
		t.Errorf("Verify() = %q, want %q", userID, "user-123")
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	m := NewManager("test-secret")
	token := m.Issue("user-123")

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"missing parts", "abc.123"},
		{"garbage", "not-a-token"},
		{"flipped signature", token[:len(token)-2] + "xx"},
		{"swapped payload", "c3dhcHBlZA" + token[strings.Index(token, "."):]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Verify(tt.token); err != ErrInvalidToken {
				t.Errorf("Verify(%q) error = %v, want %v", tt.token, err, ErrInvalidToken)
			}
		})
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token := NewManager("secret-a").Issue("user-123")

	if _, err := NewManager("secret-b").Verify(token); err != ErrInvalidToken {
		t.Errorf("Verify() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	issued := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	m := fixedManager("test-secret", issued)
	token := m.Issue("user-123")

	m.now = func() time.Time { return issued.Add(DefaultTTL + time.Minute) }
	if _, err := m.Verify(token); err != ErrExpired {
		t.Errorf("Verify() error = %v, want %v", err, ErrExpired)
	}
}

func TestVerifyJustBeforeExpiry(t *testing.T) {
	issued := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	m := fixedManager("test-secret", issued)
	token := m.Issue("user-123")

	m.now = func() time.Time { return issued.Add(DefaultTTL - time.Minute) }
	if _, err := m.Verify(token); err != nil {
		t.Errorf("Verify() error = %v, want nil just before expiry", err)
	}
}
