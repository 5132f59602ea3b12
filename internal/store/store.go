// Package store persists the transaction ledger as a YAML document. The
// storage engine is deliberately simple; the only hard contract is the
// fingerprint-uniqueness invariant enforced on merge.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"contaflow/extrato-core/internal/logging"
	"contaflow/extrato-core/internal/models"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// ErrNotFound is returned by Update when no transaction has the given id.
var ErrNotFound = fmt.Errorf("transaction not found")

// ledgerDocument is the on-disk YAML layout.
type ledgerDocument struct {
	Transactions []models.Transaction `yaml:"transactions"`
}

// LedgerStore reads and writes the transaction ledger file. All mutating
// operations hold a single writer lock: the read-then-merge-then-write step
// must not interleave between concurrent uploads for the same ledger.
type LedgerStore struct {
	path string
	mu   sync.Mutex
}

// NewLedgerStore creates a store over the given ledger file path.
func NewLedgerStore(path string) *LedgerStore {
	return &LedgerStore{path: path}
}

// Path returns the ledger file path.
func (s *LedgerStore) Path() string {
	return s.path
}

// Load reads all persisted transactions. A missing ledger file yields an
// empty slice, not an error.
func (s *LedgerStore) Load() ([]models.Transaction, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Transaction{}, nil
		}
		return nil, fmt.Errorf("error reading ledger file: %w", err)
	}

	var doc ledgerDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing ledger file: %w", err)
	}
	if doc.Transactions == nil {
		doc.Transactions = []models.Transaction{}
	}
	return doc.Transactions, nil
}

// Save writes the full transaction set, replacing the previous document.
func (s *LedgerStore) Save(transactions []models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(transactions)
}

func (s *LedgerStore) save(transactions []models.Transaction) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("error creating ledger directory: %w", err)
	}

	data, err := yaml.Marshal(ledgerDocument{Transactions: transactions})
	if err != nil {
		return fmt.Errorf("error serializing ledger: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("error writing ledger file: %w", err)
	}

	log.Debug("Saved ledger",
		logging.Field{Key: logging.FieldFile, Value: s.path},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return nil
}

// Merge appends accepted transactions to the ledger in a single write, after
// the full batch is known. The fingerprint set is re-checked against the
// freshly loaded ledger so that a concurrent upload finishing between the
// caller's read and this merge cannot introduce duplicates; collisions are
// dropped silently per the dedup invariant. Returns the merged set.
func (s *LedgerStore) Merge(accepted []models.Transaction) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.Load()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(existing))
	for _, tx := range existing {
		seen[tx.Fingerprint] = true
	}

	merged := existing
	for _, tx := range accepted {
		if seen[tx.Fingerprint] {
			log.Debug("Dropping duplicate on merge",
				logging.Field{Key: logging.FieldFingerprint, Value: tx.Fingerprint})
			continue
		}
		seen[tx.Fingerprint] = true
		merged = append(merged, tx)
	}

	if err := s.save(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Update applies the restricted update contract to the transaction with the
// given id and persists the ledger. Fields outside reconciled, category and
// note cannot be altered through this path.
func (s *LedgerStore) Update(id string, update models.TransactionUpdate) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.Load()
	if err != nil {
		return nil, err
	}

	for i := range transactions {
		if transactions[i].ID != id {
			continue
		}
		transactions[i].ApplyUpdate(update)
		if err := s.save(transactions); err != nil {
			return nil, err
		}
		updated := transactions[i]
		return &updated, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}
