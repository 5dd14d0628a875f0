package system

import (
	"errors"
	"fmt"

	"github.com/blockday/blockday/internal/cli"
	"github.com/blockday/blockday/internal/keyring"
)

type SecretCmd struct {
	Set   SecretSetCmd   `cmd:"" help:"Store the session-signing secret in the OS keyring."`
	Clear SecretClearCmd `cmd:"" help:"Remove the session-signing secret from the OS keyring."`
}

type SecretSetCmd struct {
	Secret string `arg:"" help:"The secret value. New sessions are signed with it; existing sessions become invalid."`
}

func (c *SecretSetCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; set %s instead", keyring.EnvSessionSecret)
	}
	if err := keyring.SetSessionSecret(c.Secret); err != nil {
		return err
	}
	fmt.Println("Session secret stored.")
	return nil
}

type SecretClearCmd struct{}

func (c *SecretClearCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteSessionSecret()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No session secret was stored.")
			return nil
		}
		return err
	}
	fmt.Println("Session secret cleared. A new one will be generated on the next serve.")
	return nil
}
