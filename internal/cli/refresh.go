package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"linguactl/internal"
	"linguactl/internal/models"
	"linguactl/internal/services"
	"linguactl/internal/structures"
)

func newRefreshCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch the latest account state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *internal.App) error {
				snap, err := app.Sync.Refresh(ctx)
				if err != nil {
					if errors.Is(err, services.ErrLoggedOut) {
						return fmt.Errorf("not logged in")
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Refreshed: %s tokens, %d groups\n",
					models.FormatTokens(snap.Balance), len(snap.Groups))
				return nil
			})
		},
	}
}
