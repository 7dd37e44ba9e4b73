package statement

import (
	"fmt"

	"rlopes/conciliador/internal/logging"
	"rlopes/conciliador/internal/models"
	"rlopes/conciliador/internal/store"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// StoreKey is the repository key holding the canonical record store.
const StoreKey = "extrato"

// The serialized field layout is owned by the engine; the repository only
// sees bytes. Amounts travel as exact decimal text.
type recordLayout struct {
	Date        string `yaml:"date"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Amount      string `yaml:"amount"`
	Category    string `yaml:"category,omitempty"`
	Status      string `yaml:"status,omitempty"`
	Fingerprint string `yaml:"fingerprint"`
}

type storeLayout struct {
	Records []recordLayout `yaml:"records"`
}

// Store persists the canonical record batch over a key-value repository.
type Store struct {
	repo   store.Repository
	logger logging.Logger
}

// NewStore wraps a repository as the record store.
func NewStore(repo store.Repository, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{repo: repo, logger: logger}
}

// Load reads the current record batch. A store that was never written is an
// empty batch, not an error.
func (s *Store) Load() ([]models.CanonicalRecord, error) {
	data, ok, err := s.repo.Get(StoreKey)
	if err != nil {
		return nil, fmt.Errorf("error loading record store: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var layout storeLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("error decoding record store: %w", err)
	}

	records := make([]models.CanonicalRecord, len(layout.Records))
	for i, row := range layout.Records {
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return nil, fmt.Errorf("error decoding stored amount '%s': %w", row.Amount, err)
		}
		records[i] = models.CanonicalRecord{
			Date:        row.Date,
			Label:       row.Label,
			Description: row.Description,
			Amount:      amount,
			Category:    row.Category,
			Status:      row.Status,
			Fingerprint: row.Fingerprint,
		}
	}
	return records, nil
}

// Replace overwrites the whole store with the given batch.
func (s *Store) Replace(records []models.CanonicalRecord) error {
	layout := storeLayout{Records: make([]recordLayout, len(records))}
	for i, record := range records {
		layout.Records[i] = recordLayout{
			Date:        record.Date,
			Label:       record.Label,
			Description: record.Description,
			Amount:      record.Amount.String(),
			Category:    record.Category,
			Status:      record.Status,
			Fingerprint: record.Fingerprint,
		}
	}

	data, err := yaml.Marshal(layout)
	if err != nil {
		return fmt.Errorf("error encoding record store: %w", err)
	}
	if err := s.repo.Put(StoreKey, data); err != nil {
		return fmt.Errorf("error persisting record store: %w", err)
	}

	s.logger.Debug("record store replaced",
		logging.Field{Key: "count", Value: len(records)})
	return nil
}

// Annotate sets annotation values on the record identified by fingerprint.
// Empty inputs leave the corresponding field untouched, so an existing value
// never regresses silently.
func (s *Store) Annotate(fingerprint, category, status string) error {
	records, err := s.Load()
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].Fingerprint != fingerprint {
			continue
		}
		if category != "" {
			records[i].Category = category
		}
		if status != "" {
			records[i].Status = status
		}
		return s.Replace(records)
	}

	return fmt.Errorf("no record with fingerprint '%s'", fingerprint)
}
