package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"BwClient/internal/cli/commands"
	"BwClient/internal/config"
	"BwClient/internal/logger"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// env + .env + flags
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	sugar, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = sugar.Sync() }()
	commands.SetLogger(sugar)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	if exitCode == 0 {
		return
	}
	cancel()
	_ = sugar.Sync()
	os.Exit(exitCode)
}

func printVersion() {
	fmt.Printf("bwcli\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
