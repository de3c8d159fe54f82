package main

import (
	"github.com/spf13/cobra"
)

// version is set via -ldflags at release time.
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the toolcrate version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("toolcrate %s\n", version)
		},
	}
}
