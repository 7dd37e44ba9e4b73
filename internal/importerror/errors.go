// Package importerror defines the error taxonomy shared by the statement and
// invoice importers.
package importerror

import (
	"errors"
	"fmt"
	"strings"
)

// ErrImportInProgress is returned when an import is triggered while another
// import of the same store is still running.
var ErrImportInProgress = errors.New("another import is already in progress")

// MissingColumnsError reports every required statement column the file header
// failed to provide. It aborts the whole batch; nothing is committed.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("statement header is missing required columns: %s",
		strings.Join(e.Columns, ", "))
}

// MalformedDocumentError reports an invoice document that cannot be accepted,
// typically because its accession key is absent. It is fatal for that single
// document only.
type MalformedDocumentError struct {
	File   string
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed invoice document '%s': %s", e.File, e.Reason)
}

// DuplicateDocumentError reports an invoice whose accession key is already
// archived. The offending document is rejected; the batch otherwise proceeds.
type DuplicateDocumentError struct {
	AccessionKey string
}

func (e *DuplicateDocumentError) Error() string {
	return fmt.Sprintf("invoice with accession key '%s' is already archived", e.AccessionKey)
}
