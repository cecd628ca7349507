package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"linguactl/internal"
	"linguactl/internal/structures"
)

func newWatchCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the snapshot fresh until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *internal.App) error {
				if _, ok := app.Session.Load(); !ok {
					return fmt.Errorf("not logged in")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Watching account, Ctrl-C to stop.")
				return app.Watch(ctx)
			})
		},
	}
}
