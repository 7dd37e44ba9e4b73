// Package extrato contains the statement import command.
package extrato

import (
	"fmt"

	"rlopes/conciliador/cmd/root"
	"rlopes/conciliador/internal/statement"

	"github.com/spf13/cobra"
)

var input string

// Cmd imports one delimited statement file into the record store.
var Cmd = &cobra.Command{
	Use:   "extrato",
	Short: "Import a delimited statement file into the record store",
	Long: `Imports a semicolon- or comma-delimited bank statement export. The import
is authoritative: the store is replaced by the new batch, with annotations
carried over by fingerprint.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "statement file to import")
	_ = Cmd.MarkFlagRequired("input")
}

func run(cmd *cobra.Command, args []string) error {
	logger := root.Logger()

	recordStore := statement.NewStore(root.Repository(), logger)
	importer := statement.NewImporter(
		statement.NewParser(root.Cfg.Statement.Columns, logger),
		recordStore,
		logger,
	)

	result, err := importer.ImportFile(input)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d records (%d annotations carried over), batch %s\n",
		result.Imported, result.Carried, result.BatchID)
	return nil
}
