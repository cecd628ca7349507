package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"linguactl/internal"
	"linguactl/internal/models"
	"linguactl/internal/structures"
)

func newAuthCmd(flags *structures.CliFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "auth", Short: "Authentication commands"}
	cmd.AddCommand(newLoginCmd(flags))
	cmd.AddCommand(newSignupCmd(flags))
	cmd.AddCommand(newLogoutCmd(flags))
	return cmd
}

func newLoginCmd(flags *structures.CliFlags) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword(cmd, "Password: ")
			if err != nil {
				return err
			}
			return withApp(flags, func(ctx context.Context, app *internal.App) error {
				resp, err := app.Auth.Login(ctx, models.LoginRequest{Email: email, Password: string(password)})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", resp.User.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newSignupCmd(flags *structures.CliFlags) *cobra.Command {
	var name, email, invite string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account, redeeming a pending invite if one exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword(cmd, "Password: ")
			if err != nil {
				return err
			}
			return withApp(flags, func(ctx context.Context, app *internal.App) error {
				if invite != "" {
					app.Invite.Discover(ctx, invite, false)
				}
				resp, err := app.Invite.Signup(ctx, models.SignupRequest{
					Name:     name,
					Email:    email,
					Password: string(password),
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Welcome, %s!\n", resp.User.Name)
				if joined := app.Invite.Joined(); joined != nil {
					fmt.Fprintf(out, "You were added to %q.\n", joined.Name)
					if joined.TelegramLink != "" {
						fmt.Fprintf(out, "Join the Telegram group: %s\n", joined.TelegramLink)
					} else {
						fmt.Fprintln(out, "Ask the group owner for the Telegram join link.")
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&invite, "invite", "", "Invite code to redeem")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *internal.App) error {
				if err := app.Logout(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return nil
			})
		},
	}
}

func promptPassword(cmd *cobra.Command, prompt string) ([]byte, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	return pass, err
}
