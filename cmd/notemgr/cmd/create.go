package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/howmuchisthe-fish/note-manager/pkg/ledger"
)

var (
	createCat  string
	createAmt  string
	createDesc []string
)

// createCmd represents the create command.
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new note in the database",
	Long: `Create a new note in the database.

The note is stamped with today's date. The category code decides the
sign of the stored amount:
  --cat 1 = waste  (amount stored negative)
  --cat 2 = income (amount stored as-is)

Example:
  notemgr create --cat 2 --amt 100 --desc salary
  notemgr create --cat 1 --amt 40 --desc weekly --desc groceries`,
	Run: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createCat, "cat", "", "category code: 1 = waste, 2 = income (required)")
	createCmd.Flags().StringVar(&createAmt, "amt", "", "positive amount of money (required)")
	createCmd.Flags().StringSliceVar(&createDesc, "desc", nil, "note description")

	createCmd.MarkFlagRequired("cat")
	createCmd.MarkFlagRequired("amt")
}

func runCreate(cmd *cobra.Command, args []string) {
	a := newApp()
	defer a.close()

	result, err := a.manager.Create(createCat, createAmt, createDesc)
	if err != nil {
		reportLedgerError(err, "create")
		return
	}

	fmt.Println("The new note has been created!")
	fmt.Println()
	printHeader("Created note:")
	printNotes([]ledger.Record{result.Record}, a.labels)

	if result.First {
		printBanner(fmt.Sprintf("File %q has been created!", a.exportName))
	}
}
