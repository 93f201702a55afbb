package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tyrowin/relaychat/internal/server"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"golang.org/x/sync/errgroup"
)

// Exit codes reported to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Relay chat server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(cfg.LogLevel)
	srv := server.New(*cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown requested")
		return srv.Shutdown(cfg.ShutdownTimeout)
	})

	if err := g.Wait(); err != nil {
		return exitRuntime, err
	}
	return exitOK, nil
}
