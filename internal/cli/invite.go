package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"linguactl/internal"
	"linguactl/internal/models"
	"linguactl/internal/structures"
)

func newInviteCmd(flags *structures.CliFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "invite", Short: "Invite redemption"}

	cmd.AddCommand(&cobra.Command{
		Use:   "lookup <code>",
		Short: "Look up what an invite code points at",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *internal.App) error {
				_, authed := app.Session.Load()
				app.Invite.Discover(ctx, args[0], authed)
				printInviteState(cmd.OutOrStdout(), app)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "confirm <code>",
		Short: "Join the group behind an invite code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *internal.App) error {
				if state := app.Invite.Discover(ctx, args[0], true); state != models.FlowAwaitingConfirmation {
					printInviteState(cmd.OutOrStdout(), app)
					return fmt.Errorf("invite %s cannot be confirmed", args[0])
				}
				joined, err := app.Invite.Confirm(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Joined %q.\n", joined.Name)
				if joined.TelegramLink != "" {
					fmt.Fprintf(out, "Telegram group: %s\n", joined.TelegramLink)
				}
				return nil
			})
		},
	})

	return cmd
}

func printInviteState(out io.Writer, app *internal.App) {
	switch app.Invite.State() {
	case models.FlowAwaitingConfirmation:
		target := app.Invite.Target()
		fmt.Fprintf(out, "Invite to %q by %s (%d members).\n", target.Name, target.OwnerName, target.Members)
		fmt.Fprintln(out, "Run 'linguactl invite confirm' to join.")
	case models.FlowAwaitingSignup:
		code, _ := app.Invite.PendingCode()
		fmt.Fprintf(out, "Invite %s pending, create an account with 'linguactl auth signup'.\n", code)
	case models.FlowInvalidInvite:
		fmt.Fprintln(out, "This invite link is invalid or has expired.")
	case models.FlowJoined:
		if joined := app.Invite.Joined(); joined != nil {
			fmt.Fprintf(out, "Joined %q.\n", joined.Name)
		}
	default:
		fmt.Fprintln(out, "No pending invite.")
	}
}
