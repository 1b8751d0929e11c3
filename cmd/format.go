package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kinfmt.dev/pkg/kinfmt/internal/domain"
)

var formatCheckFlag bool

// formatCmd represents the format command.
var formatCmd = newFormatCmd()

func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [files...]",
		Short: "Format files with a main-file-aware style",
		Long:  formatLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ensureWorkflow(cmd).Format(context.Background(), domain.FormatArgs{
				Paths:     parsePaths(args),
				Check:     formatCheckFlag,
				KeepStyle: viper.GetBool(keepStyleKey),
			})
		},
	}

	configureFormatFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(formatCmd)
}

func configureFormatFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&formatCheckFlag, checkFlagName, false, "report a diff instead of rewriting files in place")
}
