package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"perlver.dev/pkg/perlver/internal/domain"
	m "perlver.dev/pkg/perlver/internal/model"
)

var scanParallelFlag int
var scanNoSaveFlag bool
var scanFollowFlag bool

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Determine the minimum perl version for the given paths",
		Long:  scanLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			paths := parsePaths(args)
			reportsPath := m.Path(viper.GetString(outputFlagName))
			threads := viper.GetInt(scanParallelConfigKey)
			save := !viper.GetBool(noSaveConfigKey)

			return workflow.Audit(context.Background(), domain.AuditArgs{
				Paths:          paths,
				Exclude:        viper.GetStringSlice(excludeConfigKey),
				Output:         reportsPath,
				Threads:        threads,
				Save:           save,
				FollowIncludes: scanFollowFlag,
			})
		},
	}

	configureScanFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func configureScanFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&scanParallelFlag, scanParallelFlagName, "p", viper.GetInt(scanParallelConfigKey), "number of parallel workers for scanning")
	bindFlagToConfig(cmd.Flags().Lookup(scanParallelFlagName), scanParallelConfigKey)

	cmd.Flags().BoolVar(&scanNoSaveFlag, noSaveFlagName, viper.GetBool(noSaveConfigKey), "do not persist the audit report")
	bindFlagToConfig(cmd.Flags().Lookup(noSaveFlagName), noSaveConfigKey)

	cmd.Flags().BoolVar(&scanFollowFlag, followFlagName, false, "resolve versions of required modules recursively (not implemented)")
}
