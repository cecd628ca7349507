package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"linguactl/internal"
	"linguactl/internal/models"
	"linguactl/internal/providers"
	"linguactl/internal/structures"
)

// newOpenCmd resolves a launch URL the way a page load does: magic token,
// invite path, one-shot purchase params, or a plain return visit.
func newOpenCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "open [url]",
		Short: "Resolve a launch URL and show the resulting view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawURL := "/"
			if len(args) == 1 {
				rawURL = args[0]
			}
			return withApp(flags, func(ctx context.Context, app *internal.App) error {
				res, err := app.Open(ctx, rawURL)
				if err != nil && !providers.IsTransient(err) {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "view: %s\n", res.Target)
				fmt.Fprintf(out, "url: %s\n", res.CleanURL)
				if err != nil {
					fmt.Fprintf(out, "warning: %s (showing last known state, retry with 'me --refresh')\n", err)
				}
				if app.Bootstrap.TakePurchaseSuccess() {
					fmt.Fprintln(out, "Payment successful! Your tokens have been added.")
				}
				if app.Bootstrap.TakeOpenPurchase() {
					fmt.Fprintln(out, "Opening purchase options, run 'linguactl buy' to pick a tier.")
				}

				switch res.Target {
				case models.ViewDashboard:
					printSnapshot(out, app)
				case models.ViewSignup:
					if code, ok := app.Invite.PendingCode(); ok {
						fmt.Fprintf(out, "invite %s pending, finish with 'linguactl auth signup'\n", code)
					}
				case models.ViewInviteLanding:
					printInviteState(out, app)
				}
				return nil
			})
		},
	}
}
