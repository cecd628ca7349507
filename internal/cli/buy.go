package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"linguactl/internal"
	"linguactl/internal/structures"
)

func newBuyCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "buy [tierId]",
		Short: "List pricing tiers or start a checkout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *internal.App) error {
				out := cmd.OutOrStdout()

				if len(args) == 0 {
					snap, err := currentSnapshot(ctx, app)
					if err != nil {
						return err
					}
					if len(snap.PricingTiers) == 0 {
						fmt.Fprintln(out, "No pricing tiers available.")
						return nil
					}
					for _, tier := range snap.PricingTiers {
						fmt.Fprintf(out, "%s\t%s\t%s\n", tier.Id, tier.PriceLabel, tier.Label)
					}
					fmt.Fprintln(out, "Start a purchase with 'linguactl buy <tierId>'.")
					return nil
				}

				url, err := app.Purchase.CreateCheckout(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Open this link to complete the purchase:\n%s\n", url)
				return nil
			})
		},
	}
}
