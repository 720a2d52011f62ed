package serverrun

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	cfgpkg "github.com/rzbill/tuid/internal/config"
	"github.com/rzbill/tuid/internal/journal"
	httpserver "github.com/rzbill/tuid/internal/server/http"
	pebblestore "github.com/rzbill/tuid/internal/storage/pebble"
	logpkg "github.com/rzbill/tuid/pkg/log"
	"github.com/rzbill/tuid/pkg/tuid"
)

type Options struct {
	DataDir  string
	HTTPAddr string
	Config   cfgpkg.Config
	// Logger is built from Config when nil.
	Logger logpkg.Logger
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	// Be robust to callers that don't pass a signal-aware context.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := opts.Logger
	if logger == nil {
		l, err := logpkg.ApplyConfig(&logpkg.Config{Level: opts.Config.LogLevel, Format: opts.Config.LogFormat})
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		logger = l
	}
	logpkg.RedirectStdLog(logger)

	var jnl *journal.Journal
	if opts.Config.Journal.Enabled {
		dataDir := opts.DataDir
		if dataDir == "" {
			dataDir = opts.Config.DataDir
		}
		if dataDir == "" {
			dataDir = cfgpkg.DefaultDataDir()
		}
		fsync, err := pebblestore.ParseFsyncMode(opts.Config.Journal.Fsync)
		if err != nil {
			return err
		}
		j, err := journal.Open(journal.Options{
			DataDir:       filepath.Join(dataDir, "journal"),
			Fsync:         fsync,
			FsyncInterval: time.Duration(opts.Config.Journal.FsyncIntervalMs) * time.Millisecond,
			MaxListLimit:  opts.Config.Journal.MaxListLimit,
			Logger:        logger,
		})
		if err != nil {
			return err
		}
		defer func() { _ = j.Close() }()
		jnl = j
	}

	addr := opts.HTTPAddr
	if addr == "" {
		addr = opts.Config.HTTPAddr
	}

	srv := httpserver.New(httpserver.Options{
		Generator: tuid.NewGenerator(),
		Journal:   jnl,
		Logger:    logger,
	})
	defer srv.Close()

	logger.Info("starting server", logpkg.Str("http", addr), logpkg.Any("journal", jnl != nil))
	return srv.ListenAndServe(sctx, addr)
}
