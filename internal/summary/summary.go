// Package summary computes display views over the full transaction set.
// Totals are always recomputed from scratch: incremental caches would drift
// after reconciliation edits or manual corrections.
package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"contaflow/extrato-core/internal/models"
)

// Summary holds the running totals of a transaction set. Saldo is the net
// balance: entrada total plus saida total (saida amounts are negative).
type Summary struct {
	TotalEntrada decimal.Decimal `json:"totalEntrada"`
	TotalSaida   decimal.Decimal `json:"totalSaida"`
	Saldo        decimal.Decimal `json:"saldo"`
	Count        int             `json:"count"`
}

// Build computes the summary over the full transaction set.
func Build(transactions []models.Transaction) Summary {
	totalEntrada := decimal.Zero
	totalSaida := decimal.Zero

	for _, tx := range transactions {
		if tx.IsEntrada() {
			totalEntrada = totalEntrada.Add(tx.Amount)
		} else {
			totalSaida = totalSaida.Add(tx.Amount)
		}
	}

	return Summary{
		TotalEntrada: totalEntrada,
		TotalSaida:   totalSaida,
		Saldo:        totalEntrada.Add(totalSaida),
		Count:        len(transactions),
	}
}

// Sort returns a copy of the transactions in the display order: ascending by
// date, ties broken by description then id. Display-only; identity and dedup
// never depend on this ordering.
func Sort(transactions []models.Transaction) []models.Transaction {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		if sorted[i].Description != sorted[j].Description {
			return sorted[i].Description < sorted[j].Description
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
