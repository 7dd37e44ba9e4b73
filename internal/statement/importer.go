package statement

import (
	"fmt"
	"os"
	"sync"

	"rlopes/conciliador/internal/importerror"
	"rlopes/conciliador/internal/logging"
	"rlopes/conciliador/internal/models"

	"github.com/google/uuid"
)

// ImportResult summarizes one accepted statement import.
type ImportResult struct {
	// BatchID identifies the import in logs and diagnostics.
	BatchID string

	// Imported is the number of records now in the store.
	Imported int

	// Carried is how many records inherited a prior annotation by
	// fingerprint.
	Carried int
}

// Importer runs the read-parse-merge-replace sequence as one unit. Each
// import is authoritative for its period: records absent from the new file
// vanish from the store, carried annotations excepted.
type Importer struct {
	mu     sync.Mutex
	parser *Parser
	store  *Store
	logger logging.Logger
}

// NewImporter wires a parser and a record store into an importer.
func NewImporter(parser *Parser, store *Store, logger logging.Logger) *Importer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Importer{parser: parser, store: store, logger: logger}
}

// ImportFile reads the whole file and imports it. The file read is the only
// suspension point; everything after it runs to completion or fails with the
// prior persisted state untouched.
func (i *Importer) ImportFile(path string) (ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("error reading statement file: %w", err)
	}
	return i.Import(data)
}

// Import parses the batch, re-attaches prior annotations by fingerprint and
// replaces the store. Only one import may be in flight per store; a second
// trigger fails with ErrImportInProgress instead of interleaving with the
// read-then-write sequence.
func (i *Importer) Import(data []byte) (ImportResult, error) {
	if !i.mu.TryLock() {
		return ImportResult{}, importerror.ErrImportInProgress
	}
	defer i.mu.Unlock()

	batch, err := i.parser.Parse(data)
	if err != nil {
		return ImportResult{}, err
	}

	prior, err := i.store.Load()
	if err != nil {
		return ImportResult{}, err
	}

	annotations := make(map[string]models.Annotation, len(prior))
	for _, record := range prior {
		annotations[record.Fingerprint] = record.Annotation()
	}

	carried := 0
	for idx := range batch {
		if annotation, ok := annotations[batch[idx].Fingerprint]; ok {
			// One-way latch: a value set before the reimport is carried
			// forward unmodified.
			batch[idx].Apply(annotation)
			if annotation != (models.Annotation{}) {
				carried++
			}
		}
	}

	if err := i.store.Replace(batch); err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{
		BatchID:  uuid.NewString(),
		Imported: len(batch),
		Carried:  carried,
	}
	i.logger.Info("statement import accepted",
		logging.Field{Key: "batch", Value: result.BatchID},
		logging.Field{Key: "imported", Value: result.Imported},
		logging.Field{Key: "carried", Value: result.Carried})
	return result, nil
}
