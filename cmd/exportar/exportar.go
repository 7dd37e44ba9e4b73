// Package exportar contains the spreadsheet export command.
package exportar

import (
	"fmt"

	"rlopes/conciliador/cmd/root"
	"rlopes/conciliador/internal/clock"
	"rlopes/conciliador/internal/export"
	"rlopes/conciliador/internal/statement"

	"github.com/spf13/cobra"
)

var (
	output string
	format string
)

// Cmd exports the record store to a spreadsheet file.
var Cmd = &cobra.Command{
	Use:   "exportar",
	Short: "Export the record store to CSV or XLSX",
	RunE:  run,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: extrato-<today>.<format>)")
	Cmd.Flags().StringVarP(&format, "format", "f", "", "output format: csv or xlsx (default from config)")
}

func run(cmd *cobra.Command, args []string) error {
	logger := root.Logger()

	records, err := statement.NewStore(root.Repository(), logger).Load()
	if err != nil {
		return err
	}

	if format == "" {
		format = root.Cfg.Export.Format
	}

	writer := export.NewWriter(clock.System{}, logger)
	if output == "" {
		output = writer.DefaultFilename(format)
	}

	switch format {
	case "csv":
		err = writer.WriteCSV(records, output)
	case "xlsx":
		err = writer.WriteXLSX(records, output)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d records to %s\n", len(records), output)
	return nil
}
