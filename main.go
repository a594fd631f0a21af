package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"capture/config"
	"capture/server"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("capture", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "YAML config file")
	addr := flags.String("addr", "", "listen address (overrides server.addr)")
	level := flags.String("log-level", "", "log level (overrides log.level)")
	pretty := flags.Bool("pretty", false, "human-readable logs")
	traceDir := flags.String("trace-dir", "", "directory for per-match decision traces (overrides trace.dir)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *level != "" {
		cfg.Log.Level = *level
	}
	if *pretty {
		cfg.Log.Pretty = true
	}
	if *traceDir != "" {
		cfg.Trace.Dir = *traceDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := setupLogging(cfg.Log); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(
		server.WithLogger(log.Logger),
		server.WithRoster(cfg.Team.First, cfg.Team.Second),
		server.WithTuning(cfg.Tuning),
		server.WithTraceDir(cfg.Trace.Dir),
		server.WithTraceCompression(cfg.Trace.Compress),
	)
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

func setupLogging(cfg config.LogConfig) error {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}
