package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"perlver.dev/pkg/perlver/internal/domain"
)

// explainCmd represents the explain command.
var explainCmd = newExplainCmd()

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain [paths...]",
		Short: "Show every version marker per file",
		Long:  explainLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Explain(context.Background(), domain.ExplainArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
