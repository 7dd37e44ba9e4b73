// Package nota contains the invoice import command.
package nota

import (
	"fmt"

	"rlopes/conciliador/cmd/root"
	"rlopes/conciliador/internal/invoice"

	"github.com/spf13/cobra"
)

// Cmd imports one or more invoice XML files into the archive.
var Cmd = &cobra.Command{
	Use:   "nota <file>...",
	Short: "Import invoice XML files into the archive",
	Long: `Extracts each fixed-schema invoice XML file and archives it by accession
key. Malformed and duplicate documents are rejected individually; the rest of
the batch proceeds and every failure is reported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	logger := root.Logger()

	archive := invoice.NewArchive(root.Repository(), logger)
	importer := invoice.NewImporter(invoice.NewExtractor(logger), archive, logger)

	accepted, err := importer.ImportFiles(args)
	fmt.Printf("Archived %d of %d documents\n", accepted, len(args))
	return err
}
