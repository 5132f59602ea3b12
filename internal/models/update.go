package models

// TransactionUpdate is the narrow mutation allowed on a persisted
// transaction after ingestion. Everything the fingerprint was derived from
// (date, description, amount), the identity and the provenance fields are
// untouchable by construction.
type TransactionUpdate struct {
	Reconciled *bool
	Category   *string
	Note       *string
}

// UpdateFromPayload builds a TransactionUpdate from an untrusted partial
// payload, e.g. a decoded JSON body from the reconciliation UI. Unknown or
// disallowed keys (amount, date, anything else) are silently ignored, not
// applied.
func UpdateFromPayload(payload map[string]interface{}) TransactionUpdate {
	var update TransactionUpdate
	if v, ok := payload["reconciled"].(bool); ok {
		update.Reconciled = &v
	}
	if v, ok := payload["category"].(string); ok {
		update.Category = &v
	}
	if v, ok := payload["note"].(string); ok {
		update.Note = &v
	}
	return update
}

// ApplyUpdate mutates only the reconciliation flag, category and note. The
// returned value is the updated transaction.
func (t *Transaction) ApplyUpdate(update TransactionUpdate) *Transaction {
	if update.Reconciled != nil {
		t.Reconciled = *update.Reconciled
	}
	if update.Category != nil {
		t.Category = *update.Category
	}
	if update.Note != nil {
		t.Note = *update.Note
	}
	return t
}
