// Package main is the entry point for the tabled demo server binary.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	os.Exit(execute())
}

func execute() int {
	root := &cobra.Command{
		Use:           "tabled",
		Short:         "Carpenter demo table server",
		Long:          "Serves the registered Carpenter tables over HTTP with sorting, filtering, pagination, and export.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		return 1
	}
	return 0
}
