package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// balanceCmd represents the balance command.
var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the current balance",
	Long: `Show the current balance: the sum of all note amounts rounded
to two decimal places.

Example:
  notemgr balance`,
	Run: runBalance,
}

func runBalance(cmd *cobra.Command, args []string) {
	a := newApp()
	defer a.close()

	balance, err := a.manager.Balance()
	if err != nil {
		reportLedgerError(err, "show the balance of")
		return
	}

	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Your current balance is: %s\n", balance.StringFixed(2))
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println()
}
