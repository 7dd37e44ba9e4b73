// Package anotar contains the record annotation command.
package anotar

import (
	"fmt"

	"rlopes/conciliador/cmd/root"
	"rlopes/conciliador/internal/statement"

	"github.com/spf13/cobra"
)

var (
	category string
	status   string
)

// Cmd annotates one record, addressed by its fingerprint.
var Cmd = &cobra.Command{
	Use:   "anotar <fingerprint>",
	Short: "Annotate a record with a category and/or status",
	Long: `Sets the mutable annotation fields of one record. Annotations survive
reimports of files that still contain the same logical transaction. An empty
value leaves the corresponding field untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&category, "category", "c", "", "category to set")
	Cmd.Flags().StringVarP(&status, "status", "s", "", "status to set")
}

func run(cmd *cobra.Command, args []string) error {
	if category == "" && status == "" {
		return fmt.Errorf("nothing to annotate: pass --category and/or --status")
	}

	recordStore := statement.NewStore(root.Repository(), root.Logger())
	if err := recordStore.Annotate(args[0], category, status); err != nil {
		return err
	}

	fmt.Println("Annotation saved")
	return nil
}
