package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/phishwatch/internal/buildinfo"
	"github.com/dmitrijs2005/phishwatch/internal/client/cli"
	"github.com/dmitrijs2005/phishwatch/internal/client/config"
	"github.com/dmitrijs2005/phishwatch/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if s, ok := logger.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "failed to start", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
