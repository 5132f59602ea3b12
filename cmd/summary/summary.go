// Package summary implements the CLI command that prints ledger totals.
package summary

import (
	"fmt"

	"github.com/spf13/cobra"

	"contaflow/extrato-core/cmd/root"
	"contaflow/extrato-core/internal/store"
	summarycore "contaflow/extrato-core/internal/summary"
)

var listTransactions bool

// Cmd represents the summary command.
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Show running totals over the ledger",
	Long: `Recompute entradas, saídas and saldo over the full persisted
transaction set. Totals are always derived from scratch so that external
edits (reconciliation, manual corrections) are reflected immediately.`,
	Run: summaryFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&listTransactions, "list", "l", false, "List transactions in display order")
}

func summaryFunc(cmd *cobra.Command, args []string) {
	ledger := store.NewLedgerStore(root.LedgerPath(cmd))
	transactions, err := ledger.Load()
	if err != nil {
		root.Log.Fatalf("Failed to load ledger: %v", err)
	}

	s := summarycore.Build(transactions)
	fmt.Printf("transações: %d\n", s.Count)
	fmt.Printf("entradas:   %s\n", s.TotalEntrada.StringFixed(2))
	fmt.Printf("saídas:     %s\n", s.TotalSaida.StringFixed(2))
	fmt.Printf("saldo:      %s\n", s.Saldo.StringFixed(2))

	if listTransactions {
		for _, tx := range summarycore.Sort(transactions) {
			fmt.Printf("%s  %10s  %-7s  %s\n",
				tx.Date, tx.Amount.StringFixed(2), tx.Type, tx.Description)
		}
	}
}
