package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/blockday/blockday/internal/cli"
	"github.com/blockday/blockday/internal/cli/system"
	"github.com/blockday/blockday/internal/config"
	"github.com/blockday/blockday/internal/constants"
	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/logger"
	"github.com/blockday/blockday/internal/planner"
	"github.com/blockday/blockday/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Serve   cli.ServeCmd      `cmd:"" help:"Run the web API server." default:"1"`
	Init    system.InitCmd    `cmd:"" help:"Initialize blockday storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Watch   cli.WatchCmd      `cmd:"" help:"Run block-boundary reminders in the foreground."`
	Today   cli.TodayCmd      `cmd:"" help:"Show today's block grid."`
	History cli.HistoryCmd    `cmd:"" help:"Show planning history and stats."`
	Secret  system.SecretCmd  `cmd:"" help:"Manage the session-signing secret."`
	Notify  system.NotifyCmd  `cmd:"" hidden:"" help:"Send a notification (used internally)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal daily planner built on half-hour blocks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfgPath := CLI.Config
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	cfg, err := config.LoadFrom(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(cfgPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	if storage.IsPostgresConnString(cfg.Storage.Location) && storage.HasEmbeddedCredentials(cfg.Storage.Location) {
		fmt.Fprintln(os.Stderr, "Error: PostgreSQL connection strings with embedded credentials are not allowed.")
		fmt.Fprintln(os.Stderr, "       Use environment variables or a .pgpass file instead.")
		os.Exit(1)
	}
	store := storage.NewProvider(cfg.Storage.Location)

	appCtx := &cli.Context{
		Store:   store,
		Config:  cfg,
		Planner: planner.NewService(store),
	}

	// init and migrate open the database themselves; the keyring and
	// notify commands never touch it.
	if ctx.Selected() != nil {
		switch ctx.Selected().Name {
		case "serve", "watch", "today", "history":
			if err := store.Load(); err != nil {
				apperrors.Fatal(err)
			}
			defer store.Close()
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}
