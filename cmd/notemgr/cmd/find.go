package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/howmuchisthe-fish/note-manager/pkg/ledger"
)

var (
	findDate string
	findCat  string
	findAmt  string
)

// findCmd represents the find command.
var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find notes by date, category or amount",
	Long: `Find notes by any combination of date, category and amount.

Filters combine with AND. The amount filter matches the absolute value,
so --amt 40 finds a waste note stored as -40 as well as an income note
stored as 40.

Example:
  notemgr find --date 2024-05-02
  notemgr find --cat 1 --amt 40`,
	Run: runFind,
}

func init() {
	findCmd.Flags().StringVar(&findDate, "date", "", "note date, YYYY-MM-DD")
	findCmd.Flags().StringVar(&findCat, "cat", "", "category code: 1 = waste, 2 = income")
	findCmd.Flags().StringVar(&findAmt, "amt", "", "positive amount of money")
}

func runFind(cmd *cobra.Command, args []string) {
	a := newApp()
	defer a.close()

	records, err := a.manager.Find(findDate, findCat, findAmt)
	if err != nil {
		if errors.Is(err, ledger.ErrMissingArguments) && findDate == "" && findCat == "" && findAmt == "" {
			fmt.Println("You need to add at least one required argument to filter the notes")
			fmt.Println()
			return
		}
		reportLedgerError(err, "filter")
		return
	}

	fmt.Println(strings.Repeat("-", 30))
	fmt.Println("Search result:")
	fmt.Println(strings.Repeat("-", 30))
	fmt.Println()
	printNotes(records, a.labels)
}
