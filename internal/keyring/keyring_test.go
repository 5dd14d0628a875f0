package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetSessionSecret(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(EnvSessionSecret, "")

	if err := SetSessionSecret("s3cret"); err != nil {
		t.Fatalf("SetSessionSecret() failed: %v", err)
	}

	got, err := GetSessionSecret()
	if err != nil {
		t.Fatalf("GetSessionSecret() failed: %v", err)
	}
	if got != "s3cret" {
		t.Errorf("GetSessionSecret() = %q, want %q", got, "s3cret")
	}
}

func TestSetSessionSecretEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetSessionSecret(""); err == nil {
		t.Error("SetSessionSecret(\"\") should return an error")
	}
}

func TestGetSessionSecretNotFound(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(EnvSessionSecret, "")

	_ = DeleteSessionSecret()

	_, err := GetSessionSecret()
	if err != ErrNotFound {
		t.Errorf("GetSessionSecret() error = %v, want %v", err, ErrNotFound)
	}
}

func TestGetSessionSecretEnvOverride(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(EnvSessionSecret, "from-env")

	if err := SetSessionSecret("from-keyring"); err != nil {
		t.Fatalf("SetSessionSecret() failed: %v", err)
	}

	got, err := GetSessionSecret()
	if err != nil {
		t.Fatalf("GetSessionSecret() failed: %v", err)
	}
	if got != "from-env" {
		t.Errorf("GetSessionSecret() = %q, want the env override", got)
	}
}

func TestDeleteSessionSecret(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(EnvSessionSecret, "")

	if err := SetSessionSecret("s3cret"); err != nil {
		t.Fatalf("SetSessionSecret() failed: %v", err)
	}
	if err := DeleteSessionSecret(); err != nil {
		t.Fatalf("DeleteSessionSecret() failed: %v", err)
	}

	_, err := GetSessionSecret()
	if err != ErrNotFound {
		t.Errorf("After DeleteSessionSecret(), GetSessionSecret() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteSessionSecretNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteSessionSecret()

	if err := DeleteSessionSecret(); err != ErrNotFound {
		t.Errorf("DeleteSessionSecret() error = %v, want %v", err, ErrNotFound)
	}
}

func TestEnsureSessionSecretGenerates(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(EnvSessionSecret, "")

	_ = DeleteSessionSecret()

	first, err := EnsureSessionSecret()
	if err != nil {
		t.Fatalf("EnsureSessionSecret() failed: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("generated secret length = %d, want 64 hex chars", len(first))
	}

	second, err := EnsureSessionSecret()
	if err != nil {
		t.Fatalf("second EnsureSessionSecret() failed: %v", err)
	}
	if second != first {
		t.Error("EnsureSessionSecret() did not persist the generated secret")
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}
