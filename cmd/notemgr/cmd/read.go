package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// readCmd represents the read command.
var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Show all notes from the database",
	Long: `Show all notes from the database in their stored order.

Example:
  notemgr read`,
	Run: runRead,
}

func runRead(cmd *cobra.Command, args []string) {
	a := newApp()
	defer a.close()

	records, err := a.manager.Read()
	if err != nil {
		reportLedgerError(err, "show")
		return
	}

	printHeader("All of your notes:")
	fmt.Println()
	printNotes(records, a.labels)
}
