package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-pkgz/lgr"

	"github.com/agalitsyn/task-tracker/internal/app"
	"github.com/agalitsyn/task-tracker/internal/model"
	"github.com/agalitsyn/task-tracker/internal/storage/sqlite"
	"github.com/agalitsyn/task-tracker/internal/storage/textfile"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := ParseFlags()
	setupLogger(cfg.Debug)

	if cfg.Debug {
		lgr.Printf("[DEBUG] running with config")
		fmt.Fprintln(os.Stderr, cfg.String())
	}

	storage, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		lgr.Fatalf("[ERROR] could not open storage: %v", err)
	}

	tracker := app.NewTracker(
		app.TrackerConfig{NoColor: cfg.NoColor},
		os.Stdin,
		os.Stdout,
		storage,
		lgr.Default(),
	)
	err = tracker.Start(ctx)
	closeStorage()
	if err != nil {
		lgr.Fatalf("[ERROR] %v", err)
	}
}

// Logs go to stderr so they do not mix with the menu on stdout.
func setupLogger(debug bool) {
	opts := []lgr.Option{lgr.Out(os.Stderr), lgr.Err(os.Stderr), lgr.LevelBraces}
	if debug {
		opts = append(opts, lgr.Debug, lgr.Msec, lgr.CallerFile)
	}
	lgr.Setup(opts...)
	lgr.SetupStdLogger(opts...)
}

func openStorage(ctx context.Context, cfg Config) (model.TaskRepository, func(), error) {
	switch cfg.Storage.Type {
	case StorageSQLite:
		s, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := s.Close(); err != nil {
				lgr.Printf("[WARN] could not close database: %v", err)
			}
		}
		return s, closeFn, nil
	default:
		s := textfile.NewTaskStorage(cfg.Storage.Path, lgr.Default())
		if err := s.Init(ctx); err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}
