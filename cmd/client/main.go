package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/helpdesk/internal/buildinfo"
	"github.com/dmitrijs2005/helpdesk/internal/client/cli"
	"github.com/dmitrijs2005/helpdesk/internal/client/config"
	"github.com/dmitrijs2005/helpdesk/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		logger.Error(ctx, "cannot start client", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
