// Package update implements the CLI command behind the reconciliation
// contract: a partial update restricted to the reconciled flag, category and
// note of one transaction.
package update

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"contaflow/extrato-core/cmd/root"
	"contaflow/extrato-core/internal/models"
	"contaflow/extrato-core/internal/store"
)

var (
	payload    string
	reconciled string
	category   string
	note       string
)

// Cmd represents the update command.
var Cmd = &cobra.Command{
	Use:   "update <transaction-id>",
	Short: "Update the reconciliation fields of a transaction",
	Long: `Apply a partial update to one ledger transaction. Only the reconciled
flag, the category and the note can change; identity fields (id, date,
description, amount, fingerprint, provenance) are never altered through
this path. Fields outside the allowed set in a --payload document are
silently ignored.

Example:
  extrato-core update 3f2a... --reconciled=true --category "Receitas"
  extrato-core update 3f2a... --payload '{"note":"conferido em 05/02"}'`,
	Args: cobra.ExactArgs(1),
	Run:  updateFunc,
}

func init() {
	Cmd.Flags().StringVar(&payload, "payload", "", "JSON update payload (reconciled, category, note)")
	Cmd.Flags().StringVar(&reconciled, "reconciled", "", "Set the reconciled flag (true or false)")
	Cmd.Flags().StringVar(&category, "category", "", "Set the category")
	Cmd.Flags().StringVar(&note, "note", "", "Set the note")
}

func updateFunc(cmd *cobra.Command, args []string) {
	update, err := buildUpdate(cmd)
	if err != nil {
		root.Log.Fatalf("Invalid update: %v", err)
	}

	ledger := store.NewLedgerStore(root.LedgerPath(cmd))
	tx, err := ledger.Update(args[0], update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			root.Log.Fatalf("Transaction not found: %s", args[0])
		}
		root.Log.Fatalf("Failed to update transaction: %v", err)
	}

	fmt.Printf("%s  %s  %s  reconciled=%t  categoria=%s\n",
		tx.ID, tx.Date, tx.Description, tx.Reconciled, tx.Category)
	if tx.Note != "" {
		fmt.Printf("nota: %s\n", tx.Note)
	}
}

// buildUpdate assembles the restricted update from the JSON payload and the
// individual flags. Flags win over payload keys when both are given.
func buildUpdate(cmd *cobra.Command) (models.TransactionUpdate, error) {
	var update models.TransactionUpdate

	if payload != "" {
		var fields map[string]interface{}
		if err := json.Unmarshal([]byte(payload), &fields); err != nil {
			return update, fmt.Errorf("error parsing payload: %w", err)
		}
		update = models.UpdateFromPayload(fields)
	}

	if cmd.Flags().Changed("reconciled") {
		switch reconciled {
		case "true":
			value := true
			update.Reconciled = &value
		case "false":
			value := false
			update.Reconciled = &value
		default:
			return update, fmt.Errorf("--reconciled must be true or false, got %q", reconciled)
		}
	}
	if cmd.Flags().Changed("category") {
		update.Category = &category
	}
	if cmd.Flags().Changed("note") {
		update.Note = &note
	}
	return update, nil
}
