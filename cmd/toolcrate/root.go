package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ochairo/toolcrate/internal/domain-adapters/extractors"
	"github.com/ochairo/toolcrate/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/toolcrate/internal/domain-orchestrators"
	"github.com/ochairo/toolcrate/internal/domain/interfaces"
	"github.com/ochairo/toolcrate/internal/domain/services"
	"github.com/ochairo/toolcrate/internal/external-adapters/charmlog"
	"github.com/ochairo/toolcrate/internal/external-adapters/yaml"
)

var (
	flagVendorRoot  string
	flagCatalog     string
	flagTemplateDir string
	flagVerbose     bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "toolcrate",
		Short:         "Provision third-party developer tools into a portable vendor tree",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagVendorRoot, "root", "vendor", "vendor tree directory")
	root.PersistentFlags().StringVar(&flagCatalog, "catalog", defaultCatalogPath(), "vendor catalog file")
	root.PersistentFlags().StringVar(&flagTemplateDir, "templates", "", "settings template directory")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newInstallCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if code, ok := exitCode(err); ok {
			return code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// exitError carries an explicit process exit code through cobra.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

func exitCode(err error) (int, bool) {
	if e, ok := err.(*exitError); ok {
		return e.code, true
	}
	return 0, false
}

func defaultCatalogPath() string {
	return filepath.Join("config", "vendors.yml")
}

// app bundles the wired components a command needs.
type app struct {
	logger  interfaces.Logger
	catalog *yaml.CatalogRepository
	orch    *orchestrators.InstallOrchestrator
}

// buildApp wires the full provisioning stack from the global flags.
func buildApp() *app {
	logger := charmlog.New(flagVerbose)
	catalog := yaml.NewCatalogRepository(flagCatalog, logger)

	runner := gateways.NewProcessRunner()
	sevenZip := extractors.NewSevenZipExtractor(runner, extractors.NewVendorTreeLocator(flagVendorRoot), logger)
	installer := extractors.NewInstallerExtractor(runner, logger)
	dispatcher := extractors.NewDispatcher(
		extractors.NewTarXzExtractor(sevenZip, logger),
		extractors.NewZipExtractor(logger),
		sevenZip,
		extractors.NewMsiExtractor(runner, logger),
		installer,
	)

	orch := orchestrators.NewInstallOrchestrator(
		catalog,
		gateways.NewSourceResolver(gateways.NewHTTPGitHubGateway(logger), logger),
		gateways.NewDownloader(logger),
		gateways.NewChecksumVerifier(),
		extractors.NewVendorExtractor(dispatcher, installer),
		services.NewPostInstallConfigurator(flagTemplateDir, logger),
		orchestrators.InstallOrchestratorConfig{VendorRoot: flagVendorRoot},
		logger,
	)

	return &app{logger: logger, catalog: catalog, orch: orch}
}
