package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/blockday/blockday/internal/keyring"
	"github.com/blockday/blockday/internal/server"
	"github.com/blockday/blockday/internal/session"
)

type ServeCmd struct {
	Addr string `help:"Listen address, overrides the config file." placeholder:"HOST:PORT"`
}

func (c *ServeCmd) Run(ctx *Context) error {
	addr := ctx.Config.Server.Addr
	if c.Addr != "" {
		addr = c.Addr
	}

	secret, err := keyring.EnsureSessionSecret()
	if err != nil {
		return fmt.Errorf("failed to obtain session secret: %w", err)
	}

	srv := server.New(ctx.Planner, ctx.Store, session.NewManager(secret), ctx.Config.Defaults)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(runCtx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
