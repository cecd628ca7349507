package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"linguactl/internal"
	"linguactl/internal/models"
	"linguactl/internal/services"
	"linguactl/internal/structures"
)

func newDashboardCmd(flags *structures.CliFlags) *cobra.Command {
	var asJson bool
	var refetch bool

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the account dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *internal.App) error {
				if refetch || app.Sync.Current() == nil {
					if _, err := app.Sync.Refresh(ctx); err != nil {
						if errors.Is(err, services.ErrLoggedOut) {
							return fmt.Errorf("not logged in")
						}
						return err
					}
				}
				if asJson {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(app.Sync.Current())
				}
				printSnapshot(cmd.OutOrStdout(), app)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJson, "json", false, "Print the raw snapshot as JSON")
	cmd.Flags().BoolVar(&refetch, "refresh", false, "Force a refresh before printing")

	return cmd
}

func printSnapshot(out io.Writer, app *internal.App) {
	snap := app.Sync.Current()
	if snap == nil {
		fmt.Fprintln(out, "no account data, run 'linguactl me --refresh'")
		return
	}

	fmt.Fprintf(out, "Hi, %s!\n", snap.Profile.Name)
	fmt.Fprintf(out, "balance: %s tokens", models.FormatTokens(snap.Balance))
	if snap.LowBalance() {
		fmt.Fprint(out, " (low!)")
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "used: %s tokens over %d messages\n", models.FormatTokens(snap.TokensUsed), snap.UsageStats.TotalMessages)
	fmt.Fprintf(out, "invites: %d friends, %s tokens earned\n", snap.InviteStats.TotalInvites, models.FormatTokens(snap.InviteStats.TotalTokensEarned))
	fmt.Fprintf(out, "invite link: %s\n", snap.BotInviteURL(app.Conf.Api.BotName))

	if len(snap.Groups) > 0 {
		fmt.Fprintln(out, "groups:")
		for _, g := range snap.Groups {
			state := "off"
			if g.Active {
				state = "on"
			}
			fmt.Fprintf(out, "  %s [%s] %s: %d members, %d messages, pairs: %s\n",
				g.ChatId, state, g.Name, g.Members, g.Messages, formatPairs(g.LanguagePairs))
		}
	}

	if len(snap.PurchaseHistory) > 0 {
		fmt.Fprintln(out, "recent purchases:")
		for i, p := range snap.PurchaseHistory {
			if i == 3 {
				break
			}
			fmt.Fprintf(out, "  $%.2f for %s tokens (%s)\n", p.Amount, models.FormatTokens(p.Tokens), p.Date.Format("2006-01-02"))
		}
	}
}
