package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"linguactl/internal"
	"linguactl/internal/models"
	"linguactl/internal/services"
	"linguactl/internal/structures"
)

func newGroupsCmd(flags *structures.CliFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "groups", Short: "Manage linked Telegram groups"}
	cmd.AddCommand(newGroupsListCmd(flags))
	cmd.AddCommand(newGroupsToggleCmd(flags))
	cmd.AddCommand(newGroupsLinkCmd(flags))
	cmd.AddCommand(newGroupsLanguagesCmd(flags))
	return cmd
}

func newGroupsListCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List linked groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *internal.App) error {
				snap, err := currentSnapshot(ctx, app)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(snap.Groups) == 0 {
					fmt.Fprintln(out, "No groups linked yet. Add the bot to a Telegram group or use 'groups link'.")
					return nil
				}
				for _, g := range snap.Groups {
					state := "off"
					if g.Active {
						state = "on"
					}
					fmt.Fprintf(out, "%s [%s] %s: %d members, %d messages, %dh earned, pairs: %s\n",
						g.ChatId, state, g.Name, g.Members, g.Messages, g.HoursEarned, formatPairs(g.LanguagePairs))
				}
				return nil
			})
		},
	}
}

func newGroupsToggleCmd(flags *structures.CliFlags) *cobra.Command {
	var active bool
	cmd := &cobra.Command{
		Use:   "toggle <chatId>",
		Short: "Turn translation on or off for a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *internal.App) error {
				if err := app.Groups.Toggle(ctx, args[0], active); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Group %s active=%t\n", args[0], active)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&active, "active", true, "Desired state")
	return cmd
}

func newGroupsLinkCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "link <code>",
		Short: "Link a Telegram group by its short code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *internal.App) error {
				if err := app.Groups.Link(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Group linked")
				return nil
			})
		},
	}
}

// newGroupsLanguagesCmd drives the draft editor: the given pairs replace the
// group's configuration wholesale, going through the same add/remove/update
// operations and bounds the web editor enforces.
func newGroupsLanguagesCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "languages <chatId> [from:to ...]",
		Short: "Show or replace a group's translation pairs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *internal.App) error {
				snap, err := currentSnapshot(ctx, app)
				if err != nil {
					return err
				}
				group, ok := snap.GroupByChatId(args[0])
				if !ok {
					return fmt.Errorf("unknown group %q", args[0])
				}

				out := cmd.OutOrStdout()
				if len(args) == 1 {
					fmt.Fprintf(out, "%s: %s\n", group.Name, formatPairs(group.LanguagePairs))
					return nil
				}

				pairs, err := parsePairs(args[1:])
				if err != nil {
					return err
				}
				if len(pairs) > services.MaxLanguagePairs {
					return fmt.Errorf("at most %d pairs are allowed", services.MaxLanguagePairs)
				}

				app.Editor.Open(*group)
				applyPairs(app.Editor, pairs)
				if err := app.Editor.Save(ctx); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s\n", group.Name, formatPairs(pairs))
				return nil
			})
		},
	}
}

func currentSnapshot(ctx context.Context, app *internal.App) (*models.AccountSnapshot, error) {
	if snap := app.Sync.Current(); snap != nil {
		return snap, nil
	}
	return app.Sync.Refresh(ctx)
}

func parsePairs(args []string) ([]models.LanguagePair, error) {
	pairs := make([]models.LanguagePair, 0, len(args))
	for _, arg := range args {
		from, to, ok := strings.Cut(arg, ":")
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("invalid pair %q, expected from:to", arg)
		}
		pairs = append(pairs, models.LanguagePair{From: from, To: to})
	}
	return pairs, nil
}

// applyPairs reshapes the open draft into the requested pair list using the
// editor's own bounded operations.
func applyPairs(editor services.LanguagePairEditorInterface, pairs []models.LanguagePair) {
	for len(editor.Pairs()) < len(pairs) {
		if !editor.AddPair() {
			break
		}
	}
	for len(editor.Pairs()) > len(pairs) {
		if !editor.RemovePair(len(editor.Pairs()) - 1) {
			break
		}
	}
	for i, p := range pairs {
		editor.UpdatePair(i, services.SideFrom, p.From)
		editor.UpdatePair(i, services.SideTo, p.To)
	}
}

func formatPairs(pairs []models.LanguagePair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.From + ":" + p.To
	}
	return strings.Join(parts, " ")
}
