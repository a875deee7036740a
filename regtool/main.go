package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "regtool",
		Short: "MongoDB registrant management tool",
		Long:  "An interactive CLI tool for managing registrant records in MongoDB. Reports the connecting user's accessible databases and role privileges, and supports insert, update, query and aggregation operations.",
	}

	root.AddCommand(runCommand(), seedCommand(), dumpCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
