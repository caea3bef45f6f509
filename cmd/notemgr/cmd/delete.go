package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/howmuchisthe-fish/note-manager/pkg/ledger"
)

var (
	deleteDate string
	deleteCat  string
	deleteAmt  string
	deleteDesc []string
)

// deleteCmd represents the delete command.
var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a note from the database",
	Long: `Delete a note from the database.

The note is located by its date, category, amount and description
(skip --desc if the note has none). When the last note is deleted the
text export file is removed as well.

Example:
  notemgr delete --date 2024-05-02 --cat 1 --amt 40`,
	Run: runDelete,
}

func init() {
	deleteCmd.Flags().StringVar(&deleteDate, "date", "", "note date, YYYY-MM-DD (required)")
	deleteCmd.Flags().StringVar(&deleteCat, "cat", "", "category code: 1 = waste, 2 = income (required)")
	deleteCmd.Flags().StringVar(&deleteAmt, "amt", "", "positive amount of money (required)")
	deleteCmd.Flags().StringSliceVar(&deleteDesc, "desc", nil, "note description")

	deleteCmd.MarkFlagRequired("date")
	deleteCmd.MarkFlagRequired("cat")
	deleteCmd.MarkFlagRequired("amt")
}

func runDelete(cmd *cobra.Command, args []string) {
	a := newApp()
	defer a.close()

	result, err := a.manager.Delete(deleteDate, deleteCat, deleteAmt, deleteDesc)
	if err != nil {
		reportLedgerError(err, "delete")
		return
	}

	fmt.Println("The note has been deleted successfully!")
	fmt.Println()
	printHeader("Deleted note:")
	printNotes([]ledger.Record{result.Deleted}, a.labels)

	if result.StoreEmptied {
		fmt.Println(strings.Repeat("*", 40))
		fmt.Println("Database is empty!")
		if result.ExportRemoved {
			printBanner(fmt.Sprintf("File %q has been deleted!", a.exportName))
		}
	}
}
