// Package main provides the entry point for the extrato-core CLI.
package main

import (
	"fmt"
	"os"

	"contaflow/extrato-core/cmd/ingest"
	"contaflow/extrato-core/cmd/root"
	"contaflow/extrato-core/cmd/summary"
	"contaflow/extrato-core/cmd/update"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(update.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
