// Package export writes the canonical record store out for spreadsheets.
// The engine hands records over with exact decimal amounts; all display
// formatting happens inside the writers.
package export

import (
	"fmt"

	"rlopes/conciliador/internal/clock"
	"rlopes/conciliador/internal/logging"
)

// Writer produces spreadsheet files from canonical records.
type Writer struct {
	clock  clock.Clock
	logger logging.Logger
}

// NewWriter creates an export writer. The clock stamps default filenames.
func NewWriter(clk clock.Clock, logger logging.Logger) *Writer {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Writer{clock: clk, logger: logger}
}

// DefaultFilename returns the export filename for today in the given format.
func (w *Writer) DefaultFilename(format string) string {
	return fmt.Sprintf("extrato-%s.%s", w.clock.Now().Format("2006-01-02"), format)
}
