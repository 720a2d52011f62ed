package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	clientcmd "github.com/rzbill/tuid/internal/cmd/client"
	serverrun "github.com/rzbill/tuid/internal/cmd/server"
	cfgpkg "github.com/rzbill/tuid/internal/config"
	"github.com/rzbill/tuid/internal/journal"
	pebblestore "github.com/rzbill/tuid/internal/storage/pebble"
	logpkg "github.com/rzbill/tuid/pkg/log"
	"github.com/rzbill/tuid/pkg/tuid"
)

func main() {
	// Respect TUID_LOG_LEVEL for both CLI and server start output
	level := os.Getenv("TUID_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(logpkg.WithLevel(parsed))

	// Redirect standard library logs (used by Pebble) to our logger
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "tuid",
		Short: "tuid CLI",
		Long:  "tuid mints and inspects compact, time-sortable unique identifiers.",
	}

	// new
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Mint one or more IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			record, _ := cmd.Flags().GetBool("journal")
			note, _ := cmd.Flags().GetString("note")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			if count < 1 {
				return fmt.Errorf("--count must be positive")
			}

			var jnl *journal.Journal
			if record {
				if dataDir == "" {
					dataDir = cfgpkg.DefaultDataDir()
				}
				j, err := journal.Open(journal.Options{
					DataDir: filepath.Join(dataDir, "journal"),
					Fsync:   pebblestore.FsyncModeAlways,
					Logger:  logger,
				})
				if err != nil {
					return err
				}
				defer j.Close()
				jnl = j
			}

			for i := 0; i < count; i++ {
				id := tuid.New()
				if jnl != nil {
					if err := jnl.Append(id, "cli", note); err != nil {
						return err
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	newCmd.Flags().IntP("count", "n", 1, "Number of IDs to mint")
	newCmd.Flags().Bool("journal", false, "Record minted IDs in the local journal")
	newCmd.Flags().String("note", "", "Note stored with journaled mints")
	newCmd.Flags().String("data-dir", "", "Data directory (defaults to the OS-specific application data directory)")
	rootCmd.AddCommand(newCmd)

	// inspect
	inspectCmd := &cobra.Command{
		Use:   "inspect <id>...",
		Short: "Decode the fields of one or more IDs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, raw := range args {
				id, err := tuid.FromString(raw)
				if err != nil {
					return fmt.Errorf("invalid id %q: %w", raw, err)
				}
				fmt.Fprintf(out, "%s  time=%s machine=%s pid=%d counter=%d\n",
					id,
					id.Time().Format(time.RFC3339),
					hex.EncodeToString(id.Machine()),
					id.Pid(),
					id.Counter(),
				)
			}
			return nil
		},
	}
	rootCmd.AddCommand(inspectCmd)

	// journal commands
	rootCmd.AddCommand(clientcmd.NewJournalCommand())

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start the tuid HTTP server",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			httpAddr, _ := cmd.Flags().GetString("http")
			configPath, _ := cmd.Flags().GetString("config")
			noJournal, _ := cmd.Flags().GetBool("no-journal")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			cfgpkg.FromEnv(&cfg)
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if logFormat != "" {
				cfg.LogFormat = logFormat
			}
			if fsyncMode != "" {
				cfg.Journal.Fsync = fsyncMode
			}
			if noJournal {
				cfg.Journal.Enabled = false
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := serverrun.Run(ctx, serverrun.Options{
				DataDir:  dataDir,
				HTTPAddr: httpAddr,
				Config:   cfg,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	serverStartCmd.Flags().String("data-dir", "", "Data directory (if not specified, uses OS-specific application data directory)")
	serverStartCmd.Flags().String("http", "", "HTTP listen address (default :8080)")
	serverStartCmd.Flags().String("config", os.Getenv("TUID_CONFIG"), "Path to JSON config file")
	serverStartCmd.Flags().Bool("no-journal", false, "Disable the mint journal")
	serverStartCmd.Flags().String("fsync", "", "Journal fsync mode: always|interval|never")
	serverStartCmd.Flags().String("log-level", os.Getenv("TUID_LOG_LEVEL"), "Log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", os.Getenv("TUID_LOG_FORMAT"), "Log format: text|json (default text)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
