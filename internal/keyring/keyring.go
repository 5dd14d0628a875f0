// Package keyring stores the session-signing secret in the OS keyring so it
// survives restarts without living in a config file.
package keyring

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"

	"github.com/blockday/blockday/internal/constants"
)

// EnvSessionSecret overrides the keyring when set. Useful for containers
// where no OS keyring exists.
const EnvSessionSecret = "BLOCKDAY_SESSION_SECRET"

var (
	// ErrNotFound is returned when no secret is stored in the keyring
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetSessionSecret retrieves the session-signing secret, preferring the
// environment override. Returns ErrNotFound if no secret is stored.
func GetSessionSecret() (string, error) {
	if secret := os.Getenv(EnvSessionSecret); secret != "" {
		return secret, nil
	}
	secret, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// SetSessionSecret stores the session-signing secret in the OS keyring.
func SetSessionSecret(secret string) error {
	if secret == "" {
		return errors.New("secret cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, secret); err != nil {
		return fmt.Errorf("failed to store secret in keyring: %w", err)
	}
	return nil
}

// DeleteSessionSecret removes the session-signing secret from the OS keyring.
func DeleteSessionSecret() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete secret from keyring: %w", err)
	}
	return nil
}

// EnsureSessionSecret returns the stored secret, generating and persisting a
// random one on first run. When the keyring is unavailable the generated
// secret is returned unsaved, so sessions will not survive a restart.
func EnsureSessionSecret() (string, error) {
	secret, err := GetSessionSecret()
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrKeyringUnavailable) {
		return "", err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	secret = hex.EncodeToString(buf)

	if err := SetSessionSecret(secret); err != nil {
		return secret, nil
	}
	return secret, nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
