package main

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the vendors in the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := buildApp()

			vendors, err := a.catalog.ListVendors(cmd.Context())
			if err != nil {
				return err
			}

			for _, v := range vendors {
				state := "enabled"
				if !v.Enabled {
					state = "disabled"
				}
				cmd.Printf("%-12s %-10s %-8s %s\n", v.Key, state, v.Source.Type, v.Description)
			}
			return nil
		},
	}
}
