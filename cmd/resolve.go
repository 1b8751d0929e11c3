package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// resolveCmd represents the resolve command.
var resolveCmd = newResolveCmd()

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [files...]",
		Short: "Resolve main counterpart files without formatting",
		Long:  resolveLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			resolutions, err := ensureWorkflow(cmd).Resolve(ctx, parsePaths(args))
			if err != nil {
				return err
			}

			return ensureUI(cmd).DisplayResolutions(ctx, resolutions)
		},
		Args: cobra.MinimumNArgs(1),
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
