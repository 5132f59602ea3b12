package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reconciledTransaction() Transaction {
	return Transaction{
		ID:          "tx-1",
		Date:        "2024-01-15",
		Description: "PIX RECEBIDO",
		Amount:      decimal.NewFromInt(100),
		Type:        TypeEntrada,
		Category:    CategoryUnclassified,
		ImportedAt:  time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
		BatchID:     "batch-1",
		Fingerprint: "abc123",
	}
}

func TestApplyUpdate(t *testing.T) {
	tx := reconciledTransaction()
	reconciled := true
	category := "Receitas"
	note := "conferido"

	tx.ApplyUpdate(TransactionUpdate{
		Reconciled: &reconciled,
		Category:   &category,
		Note:       &note,
	})

	assert.True(t, tx.Reconciled)
	assert.Equal(t, "Receitas", tx.Category)
	assert.Equal(t, "conferido", tx.Note)
}

func TestApplyUpdatePartial(t *testing.T) {
	tx := reconciledTransaction()
	note := "só a nota"

	tx.ApplyUpdate(TransactionUpdate{Note: &note})

	assert.False(t, tx.Reconciled)
	assert.Equal(t, CategoryUnclassified, tx.Category)
	assert.Equal(t, "só a nota", tx.Note)
}

func TestUpdateFromPayloadIgnoresDisallowedFields(t *testing.T) {
	tx := reconciledTransaction()
	original := tx

	update := UpdateFromPayload(map[string]interface{}{
		"reconciled": true,
		"amount":     999,
		"hacker":     "x",
	})
	tx.ApplyUpdate(update)

	assert.True(t, tx.Reconciled)
	assert.True(t, tx.Amount.Equal(original.Amount))
	assert.Equal(t, original.Date, tx.Date)
	assert.Equal(t, original.Description, tx.Description)
	assert.Equal(t, original.Fingerprint, tx.Fingerprint)
	assert.Equal(t, original.ID, tx.ID)
	assert.Equal(t, original.BatchID, tx.BatchID)
}

func TestUpdateFromPayloadTypeMismatch(t *testing.T) {
	// A reconciled value of the wrong type is ignored, not coerced.
	update := UpdateFromPayload(map[string]interface{}{
		"reconciled": "yes",
		"note":       42,
	})
	require.Nil(t, update.Reconciled)
	require.Nil(t, update.Note)
}
