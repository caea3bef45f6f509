package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// clearCmd represents the clear command.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all notes from the database",
	Long: `Delete all notes from the database and remove the text export
file. Clearing an already empty database succeeds as well.

Example:
  notemgr clear`,
	Run: runClear,
}

func runClear(cmd *cobra.Command, args []string) {
	a := newApp()
	defer a.close()

	result, err := a.manager.Clear()
	if err != nil {
		reportLedgerError(err, "clear")
		return
	}

	fmt.Println("The notes history has been cleaned!")
	fmt.Println()

	if result.ExportRemoved {
		printBanner(fmt.Sprintf("File %q has been deleted!", a.exportName))
	}
}
