package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/howmuchisthe-fish/note-manager/pkg/ledger"
)

var (
	updateDate    string
	updateCat     string
	updateAmt     string
	updateDesc    []string
	updateNewCat  string
	updateNewAmt  string
	updateNewDesc []string
)

// updateCmd represents the update command.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update an existing note",
	Long: `Update an existing note.

The note is located by its previous date, category, amount and
description (skip --desc if the note has none). The replacement note is
built from the new category, amount and description and stamped with
today's date.

Example:
  notemgr update --date 2024-05-02 --cat 1 --amt 40 --new-cat 1 --new-amt 45 --new-desc groceries`,
	Run: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateDate, "date", "", "previous note date, YYYY-MM-DD (required)")
	updateCmd.Flags().StringVar(&updateCat, "cat", "", "previous category code: 1 = waste, 2 = income (required)")
	updateCmd.Flags().StringVar(&updateAmt, "amt", "", "previous positive amount of money (required)")
	updateCmd.Flags().StringSliceVar(&updateDesc, "desc", nil, "previous note description")
	updateCmd.Flags().StringVar(&updateNewCat, "new-cat", "", "new category code: 1 = waste, 2 = income (required)")
	updateCmd.Flags().StringVar(&updateNewAmt, "new-amt", "", "new positive amount of money (required)")
	updateCmd.Flags().StringSliceVar(&updateNewDesc, "new-desc", nil, "new note description")

	updateCmd.MarkFlagRequired("date")
	updateCmd.MarkFlagRequired("cat")
	updateCmd.MarkFlagRequired("amt")
	updateCmd.MarkFlagRequired("new-cat")
	updateCmd.MarkFlagRequired("new-amt")
}

func runUpdate(cmd *cobra.Command, args []string) {
	a := newApp()
	defer a.close()

	result, err := a.manager.Update(updateDate, updateCat, updateAmt, updateDesc, updateNewCat, updateNewAmt, updateNewDesc)
	if err != nil {
		reportLedgerError(err, "update")
		return
	}

	fmt.Println("The update finished successfully!")
	fmt.Println()
	printHeader("Before the update:")
	printNotes([]ledger.Record{result.Previous}, a.labels)
	printHeader("After the update:")
	printNotes([]ledger.Record{result.Updated}, a.labels)

	printBanner(fmt.Sprintf("File %q has been updated!", a.exportName))
}
