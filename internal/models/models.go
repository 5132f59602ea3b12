// Package models provides the data structures shared by the statement
// parsers, the ingestion orchestrator and the ledger store.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction by the sign of its amount.
type TransactionType string

const (
	// TypeEntrada marks an inflow (amount >= 0).
	TypeEntrada TransactionType = "entrada"
	// TypeSaida marks an outflow (amount < 0).
	TypeSaida TransactionType = "saida"
)

// CategoryUnclassified is the sentinel category assigned when the source
// statement carries no classification for an entry.
const CategoryUnclassified = "Não classificado"

// RawEntry is the transient tuple produced by a format parser. It is consumed
// by the transaction builder within a single ingestion call and never
// persisted.
type RawEntry struct {
	Date        string
	Description string
	Amount      decimal.Decimal
	// HasAmount distinguishes a parsed zero from a missing amount. Entries
	// without an amount are dropped by the builder.
	HasAmount bool
	Category  string
}

// SourceFile records the provenance of a transaction. Immutable after the
// transaction is created.
type SourceFile struct {
	Name       string    `yaml:"name" json:"name"`
	Size       int64     `yaml:"size" json:"size"`
	MIMEType   string    `yaml:"mime_type" json:"mimeType"`
	Format     string    `yaml:"format" json:"format"`
	UploadedAt time.Time `yaml:"uploaded_at" json:"uploadedAt"`
	BatchID    string    `yaml:"batch_id" json:"batchId"`
	OwnerID    string    `yaml:"owner_id,omitempty" json:"ownerId,omitempty"`
}

// Transaction is the canonical persisted unit of the ledger.
type Transaction struct {
	ID          string          `yaml:"id" json:"id" csv:"ID"`
	Date        string          `yaml:"date" json:"date" csv:"Date"`
	Description string          `yaml:"description" json:"description" csv:"Description"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount" csv:"Amount"`
	Type        TransactionType `yaml:"type" json:"type" csv:"Type"`
	Category    string          `yaml:"category" json:"category" csv:"Category"`
	Reconciled  bool            `yaml:"reconciled" json:"reconciled" csv:"Reconciled"`
	Note        string          `yaml:"note" json:"note" csv:"Note"`
	SourceFile  SourceFile      `yaml:"source_file" json:"sourceFile" csv:"-"`
	ImportedAt  time.Time       `yaml:"imported_at" json:"importedAt" csv:"ImportedAt"`
	BatchID     string          `yaml:"batch_id" json:"batchId" csv:"BatchID"`
	Fingerprint string          `yaml:"fingerprint" json:"fingerprint" csv:"Fingerprint"`
}

// IsEntrada reports whether the transaction is an inflow.
func (t *Transaction) IsEntrada() bool {
	return t.Type == TypeEntrada
}

// IsSaida reports whether the transaction is an outflow.
func (t *Transaction) IsSaida() bool {
	return t.Type == TypeSaida
}

// TypeForAmount derives the transaction type from the sign of an amount.
// Zero counts as entrada.
func TypeForAmount(amount decimal.Decimal) TransactionType {
	if amount.IsNegative() {
		return TypeSaida
	}
	return TypeEntrada
}
