package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/toolcrate/internal/domain/entities"
	"github.com/ochairo/toolcrate/internal/domain/interfaces"
)

func newInstallCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "install [vendor...]",
		Short: "Install vendors and their dependencies",
		Long: `Install downloads, verifies, and extracts the named vendors into the
vendor tree, installing each vendor's dependencies first. With --all,
every enabled vendor in the catalog is installed.

Already-installed vendors (extract directory present and non-empty) are
skipped. The exit code is the number of vendors that failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("name at least one vendor or pass --all")
			}
			if all && len(args) > 0 {
				return fmt.Errorf("--all cannot be combined with vendor names")
			}

			a := buildApp()
			ctx := cmd.Context()

			var batch *entities.BatchResult
			var err error
			if all {
				batch, err = a.orch.InstallAll(ctx)
			} else {
				batch, err = a.orch.Install(ctx, args...)
			}
			if err != nil {
				return err
			}

			printBatch(cmd, batch)

			if failures := batch.FailureCount(); failures > 0 {
				a.logger.Error("some vendors failed to install",
					interfaces.F("failed", failures))
				return &exitError{code: failures}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "install every enabled vendor")
	return cmd
}

func printBatch(cmd *cobra.Command, batch *entities.BatchResult) {
	for _, r := range batch.Results {
		status := "FAIL"
		switch {
		case r.Skipped:
			status = "SKIP"
		case r.Success:
			status = "OK"
		}
		cmd.Printf("%-6s %-12s %s\n", status, r.Key, r.Message)
	}
	cmd.Printf("\n%d installed, %d skipped, %d failed\n",
		batch.Succeeded, batch.Skipped, batch.Failed)
}
