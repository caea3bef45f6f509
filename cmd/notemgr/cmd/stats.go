package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/howmuchisthe-fish/note-manager/pkg/config"
	"github.com/howmuchisthe-fish/note-manager/pkg/history"
	"github.com/howmuchisthe-fish/note-manager/pkg/pathutil"
)

var statsOp string

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display ledger operation statistics",
	Long: `Display statistics about the recorded ledger operations.

Shows:
- Total number of creates, updates, deletes and clears
- The last change timestamp and the last operation type

With --op, also lists the recorded operations of that type, most
recent first.

Example:
  notemgr stats
  notemgr stats --op delete`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsOp, "op", "", "list recorded operations of this type (create, update, delete or clear)")
}

func runStats(cmd *cobra.Command, args []string) {
	slog.Info("Loading configuration")

	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	paths := pathutil.New(pathutil.Config{
		Root:          cfg.Notes.Root,
		DBPath:        cfg.Notes.DBPath,
		ExportPath:    cfg.Notes.ExportPath,
		HistoryDBPath: cfg.Notes.HistoryDBPath,
	})

	dbPath := paths.GetHistoryDBPath()
	if !paths.FileExists(dbPath) {
		fmt.Println("No operations have been recorded yet")
		return
	}

	slog.Debug("Opening history database", "path", dbPath)
	conn, err := history.Open(dbPath)
	exitOnError(err, "failed to open history database")
	defer conn.Close()

	hist := history.New(conn)

	stats, err := hist.GetStats()
	exitOnError(err, "failed to get statistics")

	lastOp, err := hist.GetMetadata("last_operation")
	exitOnError(err, "failed to get history metadata")

	fmt.Println("\n=== Ledger Statistics ===")
	fmt.Printf("Created notes: %d\n", stats.TotalCreates)
	fmt.Printf("Updated notes: %d\n", stats.TotalUpdates)
	fmt.Printf("Deleted notes: %d\n", stats.TotalDeletes)
	fmt.Printf("Clears:        %d\n", stats.TotalClears)

	if stats.LastChange.Valid {
		fmt.Printf("Last change:   %s\n", stats.LastChange.String)
	} else {
		fmt.Printf("Last change:   (never)\n")
	}
	if lastOp != "" {
		fmt.Printf("Last op type:  %s\n", lastOp)
	}
	fmt.Println()

	if statsOp != "" {
		ops, err := hist.GetOperations(statsOp)
		exitOnError(err, "failed to get operations")

		if len(ops) == 0 {
			fmt.Printf("No %q operations recorded\n", statsOp)
			return
		}
		fmt.Printf("=== Recorded %q operations ===\n", statsOp)
		for _, op := range ops {
			fmt.Printf("%s  date=%s category=%s amount=%s description=%q\n",
				op.AppliedAt,
				op.RecordDate.String,
				op.Category.String,
				op.Amount.String,
				op.Description.String,
			)
		}
	}

	slog.Info("Statistics displayed successfully")
}
