package invoice

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"rlopes/conciliador/internal/importerror"
	"rlopes/conciliador/internal/logging"
	"rlopes/conciliador/internal/models"
)

// Importer runs invoice batches against the archive. Malformed or duplicate
// documents abort only themselves; the rest of the batch proceeds and every
// cause is reported, so a user can fix a whole directory in one pass.
type Importer struct {
	mu        sync.Mutex
	extractor *Extractor
	archive   *Archive
	logger    logging.Logger
}

// NewImporter wires an extractor and an archive into an importer.
func NewImporter(extractor *Extractor, archive *Archive, logger logging.Logger) *Importer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Importer{extractor: extractor, archive: archive, logger: logger}
}

// ImportFiles extracts and archives each file. It returns how many documents
// were accepted and the joined per-document failures, if any. Accepted
// documents are committed in a single archive write; a failed write commits
// nothing. Only one import may run against the archive at a time.
func (i *Importer) ImportFiles(paths []string) (int, error) {
	if !i.mu.TryLock() {
		return 0, importerror.ErrImportInProgress
	}
	defer i.mu.Unlock()

	existing, err := i.archive.Load()
	if err != nil {
		return 0, err
	}

	archived := make(map[string]bool, len(existing))
	for _, doc := range existing {
		archived[doc.AccessionKey] = true
	}

	var failures []error
	accepted := make([]models.InvoiceDocument, 0, len(paths))

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			failures = append(failures, fmt.Errorf("error reading invoice file '%s': %w", path, err))
			continue
		}

		doc, err := i.extractor.Extract(path, data)
		if err != nil {
			failures = append(failures, err)
			continue
		}

		if archived[doc.AccessionKey] {
			failures = append(failures, &importerror.DuplicateDocumentError{AccessionKey: doc.AccessionKey})
			continue
		}

		archived[doc.AccessionKey] = true
		accepted = append(accepted, doc)
	}

	if len(accepted) > 0 {
		if err := i.archive.persist(append(existing, accepted...)); err != nil {
			return 0, err
		}
	}

	i.logger.Info("invoice import finished",
		logging.Field{Key: "accepted", Value: len(accepted)},
		logging.Field{Key: "rejected", Value: len(failures)})
	return len(accepted), errors.Join(failures...)
}
