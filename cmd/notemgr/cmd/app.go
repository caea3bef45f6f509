package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/howmuchisthe-fish/note-manager/pkg/config"
	"github.com/howmuchisthe-fish/note-manager/pkg/export"
	"github.com/howmuchisthe-fish/note-manager/pkg/history"
	"github.com/howmuchisthe-fish/note-manager/pkg/ledger"
	"github.com/howmuchisthe-fish/note-manager/pkg/pathutil"
	"github.com/howmuchisthe-fish/note-manager/pkg/store"
)

// app bundles the wired components a command needs.
type app struct {
	manager    *ledger.Manager
	labels     export.Labels
	exportName string
	close      func()
}

// newApp loads configuration and wires the store, the exporter, the
// history recorder and the engine.
func newApp() *app {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	paths := pathutil.New(pathutil.Config{
		Root:          cfg.Notes.Root,
		DBPath:        cfg.Notes.DBPath,
		ExportPath:    cfg.Notes.ExportPath,
		HistoryDBPath: cfg.Notes.HistoryDBPath,
	})
	exitOnError(paths.EnsureDir(paths.GetRoot()), "failed to create data directory")

	labels, err := export.LoadLabels(cfg.Notes.LabelsPath)
	exitOnError(err, "failed to load display labels")

	st := store.New(paths.GetDBPath())
	st.OnCreate = func() {
		printBanner("Database has been created!")
	}

	exporter := export.NewFileExporter(paths.GetExportPath(), labels)

	// Operation history is best effort: an unavailable database must
	// not block ledger operations.
	var recorder ledger.Recorder
	closeConn := func() {}
	slog.Debug("Opening history database", "path", paths.GetHistoryDBPath())
	conn, err := history.Open(paths.GetHistoryDBPath())
	if err != nil {
		slog.Warn("Operation history unavailable", "error", err)
	} else {
		recorder = history.New(conn)
		closeConn = func() { conn.Close() }
	}

	return &app{
		manager:    ledger.NewManager(st, exporter, recorder),
		labels:     labels,
		exportName: filepath.Base(paths.GetExportPath()),
		close:      closeConn,
	}
}

// printBanner prints a starred notice block.
func printBanner(msg string) {
	fmt.Println(strings.Repeat("*", 40))
	fmt.Println(msg)
	fmt.Println(strings.Repeat("*", 40))
	fmt.Println()
}

// printHeader prints a dash-ruled section title.
func printHeader(title string) {
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println(title)
	fmt.Println(strings.Repeat("-", 40))
}

// printNotes prints records in the display format shared with the text
// export.
func printNotes(records []ledger.Record, labels export.Labels) {
	for _, line := range export.Lines(records, labels) {
		fmt.Println(line)
	}
}

// reportLedgerError turns an engine failure into the human-readable
// outcome the original tool printed. Validation and lookup failures
// leave exit code 0; anything else (a corrupt store, an I/O failure)
// escalates as fatal.
func reportLedgerError(err error, action string) {
	var matchErr *ledger.MatchError
	switch {
	case errors.As(err, &matchErr):
		fmt.Printf("No matches with %s %q to %s\n\n", matchErr.Stage, matchErr.Value, matchErr.Action)
	case errors.Is(err, ledger.ErrEmptyStore):
		fmt.Printf("Can't %s the note(-s) because of the empty database\n\n", action)
	case errors.Is(err, ledger.ErrMissingArguments):
		fmt.Printf("You need to add all the required arguments to %s the note\n\n", action)
	case errors.Is(err, ledger.ErrInvalidAmount):
		fmt.Println("The amount of money must be a positive number")
		fmt.Println()
	case errors.Is(err, ledger.ErrInvalidDate):
		fmt.Println(err.Error())
		fmt.Println()
	case errors.Is(err, ledger.ErrNoMatches):
		fmt.Println("No matches in your search")
		fmt.Println()
	default:
		exitOnError(err, fmt.Sprintf("failed to %s the note(-s)", action))
	}
}
