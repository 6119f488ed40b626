package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "time/tzdata"

	"github.com/alecthomas/kong"

	"github.com/redeposto/ponto-backend-go/internal/config"
	"github.com/redeposto/ponto-backend-go/internal/pkg/logger"
)

var CLI struct {
	Version kong.VersionFlag

	Token   TokenCmd   `cmd:"" help:"Mint an access token for a station user."`
	Migrate MigrateCmd `cmd:"" help:"Apply the embedded database schema."`
	Digest  DigestCmd  `cmd:"" help:"Log inconsistent timesheet days for one date."`
}

// Context is shared by every command.
type Context struct {
	context.Context
	Config *config.Config
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("pontoctl"),
		kong.Description("Operational tooling for the ponto backend"),
		kong.UsageOnError(),
		kong.Vars{"version": "v1.0.0"},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(os.Stderr, cfg.App.LogLevel, cfg.App.Env, "v1.0.0"))

	if err := kctx.Run(&Context{Context: context.Background(), Config: cfg}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
