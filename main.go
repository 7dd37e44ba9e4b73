package main

import (
	"os"

	"rlopes/conciliador/cmd/anotar"
	"rlopes/conciliador/cmd/exportar"
	"rlopes/conciliador/cmd/extrato"
	"rlopes/conciliador/cmd/nota"
	"rlopes/conciliador/cmd/resumo"
	"rlopes/conciliador/cmd/root"
)

func main() {
	root.Init()

	root.Cmd.AddCommand(extrato.Cmd)
	root.Cmd.AddCommand(anotar.Cmd)
	root.Cmd.AddCommand(nota.Cmd)
	root.Cmd.AddCommand(resumo.Cmd)
	root.Cmd.AddCommand(exportar.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
