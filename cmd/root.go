// Package cmd provides the root command and CLI setup for perlver.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"perlver.dev/pkg/perlver/internal/adapter"
	"perlver.dev/pkg/perlver/internal/controller"
	"perlver.dev/pkg/perlver/internal/domain"
	m "perlver.dev/pkg/perlver/internal/model"
)

var sourceFSAdapter adapter.SourceFSAdapter
var perlFileAdapter adapter.PerlFileAdapter
var reportStore adapter.ReportStore
var resolver *domain.Resolver
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	sourceFSAdapter = adapter.NewLocalSourceFSAdapter()
	perlFileAdapter = adapter.NewLocalPerlFileAdapter()
	reportStore = adapter.NewReportStore()
	resolver = domain.NewResolver(domain.DefaultRegistry())
	workflow = domain.NewWorkflow(
		sourceFSAdapter,
		perlFileAdapter,
		reportStore,
		ui,
		resolver,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./lib/...      recursively scan lib directory
  - ./lib ./t      scan multiple directories`

const rootLongDescription = `Perlver determines the minimum version of the perl interpreter required to
run a body of Perl code, by combining explicit version requirements
(use/require statements) with the versions implied by the syntax the code
actually uses.

` + pathPatternsHelp

const scanLongDescription = `Scan the given paths (default: current directory) and report the minimum
perl version per file plus the requirement for the set as a whole.

` + pathPatternsHelp

const explainLongDescription = `Report every version marker each file trips, not just the highest one, so
a surprising requirement can be traced back to a specific construct.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "perlver",
		Short: "Minimum perl version analyzer",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for audit reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching glob (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{m.Path(".")}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
