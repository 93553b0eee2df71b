package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mfco/spacewatch/pkg/app"
	"github.com/mfco/spacewatch/pkg/config"
)

func main() {
	var err error
	var fileName string
	var cfg config.Config
	flag.StringVar(&fileName, "f", "", "Configuration file")
	flag.Parse()

	if fileName == "" {
		fmt.Fprintf(os.Stderr, "Configuration file not provided. Exit 1")
		fmt.Fprintf(os.Stderr, "\nUsage:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if cfg, err = config.ReadYamlCnxFile(fileName); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration file: %s\n", err.Error())
		os.Exit(1)
	}
	l := initTrace(cfg.LogLevel)

	// Handle SIGTERM/SIGINT
	ctx, cancelFunc := context.WithCancel(context.Background())
	SetupCloseHandler(ctx, cancelFunc, l)

	s, err := app.NewApp(cfg)
	if err != nil {
		l.Error("error creating the app", slog.String("error", err.Error()))
		os.Exit(1)
	}
	s.SetLogger(l)

	if err := s.StartMonitor(ctx); err != nil {
		l.Error("error starting the bucket monitor", slog.String("error", err.Error()))
		os.Exit(1)
	}

	<-ctx.Done()
	l.Info("stop the server")
	s.StopServer()
}

// SetupCloseHandler cancels the context on SIGINT/SIGTERM.
func SetupCloseHandler(ctx context.Context, cancelFunc context.CancelFunc, log *slog.Logger) {
	c := make(chan os.Signal, 5)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		s := <-c
		log.Info("signal received", slog.String("signal", s.String()))
		cancelFunc()
	}()
}

// initTrace initializes the logger
func initTrace(debugLevel string) *slog.Logger {
	handlerOptions := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	switch debugLevel {
	case "debug":
		handlerOptions.Level = slog.LevelDebug
		handlerOptions.AddSource = true
	case "info":
		handlerOptions.Level = slog.LevelInfo
	case "warn":
		handlerOptions.Level = slog.LevelWarn
	case "error":
		handlerOptions.Level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stdout, handlerOptions)
	return slog.New(handler)
}
