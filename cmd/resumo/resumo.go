// Package resumo contains the per-period aggregation command.
package resumo

import (
	"fmt"

	"rlopes/conciliador/cmd/root"
	"rlopes/conciliador/internal/statement"
	"rlopes/conciliador/internal/view"

	"github.com/spf13/cobra"
)

var period string

// Cmd reports per-period totals over the record store.
var Cmd = &cobra.Command{
	Use:   "resumo",
	Short: "Report per-period totals over the record store",
	RunE:  run,
}

func init() {
	Cmd.Flags().StringVarP(&period, "period", "p", "", "limit the report to one YYYY-MM period")
}

func run(cmd *cobra.Command, args []string) error {
	logger := root.Logger()

	records, err := statement.NewStore(root.Repository(), logger).Load()
	if err != nil {
		return err
	}

	for _, p := range view.Periods(records) {
		if period != "" && p.String() != period {
			continue
		}
		summary := view.Totalize(view.Filter(records, p))
		fmt.Printf("%s  %5d records  %14s\n", p, summary.Count, summary.Sum.StringFixed(2))
	}

	total := view.Totalize(records)
	fmt.Printf("total    %5d records  %14s\n", total.Count, total.Sum.StringFixed(2))
	return nil
}
