package main

import (
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which vendors are installed",
		Long: `Status inspects the vendor tree and reports, per catalog vendor,
whether its extract directory exists and holds content.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := buildApp()

			vendors, err := a.catalog.ListVendors(cmd.Context())
			if err != nil {
				return err
			}

			missing := 0
			for _, v := range vendors {
				state := "installed"
				if !a.orch.IsInstalled(v) {
					state = "missing"
					if v.Enabled {
						missing++
					}
				}
				cmd.Printf("%-12s %s\n", v.Key, state)
			}

			if missing > 0 {
				cmd.Printf("\n%d enabled vendor(s) missing, run 'toolcrate install --all'\n", missing)
			}
			return nil
		},
	}
}
