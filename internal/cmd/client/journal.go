package clientcmd

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	cfgpkg "github.com/rzbill/tuid/internal/config"
	"github.com/rzbill/tuid/internal/journal"
	pebblestore "github.com/rzbill/tuid/internal/storage/pebble"
	"github.com/rzbill/tuid/pkg/tuid"
)

func openJournal(dataDir string) (*journal.Journal, error) {
	if dataDir == "" {
		dataDir = cfgpkg.DefaultDataDir()
	}
	return journal.Open(journal.Options{
		DataDir: filepath.Join(dataDir, "journal"),
		// Read-mostly CLI access; no need to force syncs.
		Fsync: pebblestore.FsyncModeNever,
	})
}

// NewJournalCommand builds `tuid journal` with list and get subcommands.
func NewJournalCommand() *cobra.Command {
	journalCmd := &cobra.Command{Use: "journal", Short: "Inspect the local mint journal"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded mints in chronological order",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			limit, _ := cmd.Flags().GetInt("limit")
			filter, _ := cmd.Flags().GetString("filter")
			afterRaw, _ := cmd.Flags().GetString("after")

			opts := journal.ListOptions{Limit: limit, Filter: filter}
			if afterRaw != "" {
				after, err := tuid.FromString(afterRaw)
				if err != nil {
					return fmt.Errorf("invalid --after id: %w", err)
				}
				opts.After = after
			}

			j, err := openJournal(dataDir)
			if err != nil {
				return err
			}
			defer j.Close()

			entries, err := j.List(opts)
			if err != nil {
				return err
			}
			for _, e := range entries {
				line := fmt.Sprintf("%s  %s  %s", e.ID, e.ID.Time().Format(time.RFC3339), e.Source)
				if e.Note != "" {
					line += "  " + e.Note
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	listCmd.Flags().String("data-dir", "", "Data directory (defaults to the OS-specific application data directory)")
	listCmd.Flags().Int("limit", 0, "Maximum entries to print (0 = journal default)")
	listCmd.Flags().String("filter", "", "CEL filter over id, ts, machine, pid, counter, source, note, now")
	listCmd.Flags().String("after", "", "Only entries newer than this ID")
	journalCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			id, err := tuid.FromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			j, err := openJournal(dataDir)
			if err != nil {
				return err
			}
			defer j.Close()

			e, found, err := j.Get(id)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("id %s not in journal", id)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:      %s\n", e.ID)
			fmt.Fprintf(out, "time:    %s\n", e.ID.Time().Format(time.RFC3339))
			fmt.Fprintf(out, "machine: %s\n", hex.EncodeToString(e.ID.Machine()))
			fmt.Fprintf(out, "pid:     %d\n", e.ID.Pid())
			fmt.Fprintf(out, "counter: %d\n", e.ID.Counter())
			fmt.Fprintf(out, "source:  %s\n", e.Source)
			if e.Note != "" {
				fmt.Fprintf(out, "note:    %s\n", e.Note)
			}
			return nil
		},
	}
	getCmd.Flags().String("data-dir", "", "Data directory (defaults to the OS-specific application data directory)")
	journalCmd.AddCommand(getCmd)

	return journalCmd
}
