package cli

import (
	"context"

	"github.com/spf13/cobra"

	"linguactl/internal"
	"linguactl/internal/di"
	"linguactl/internal/structures"
)

func NewRootCmd(version, buildDate string) *cobra.Command {
	flags := &structures.CliFlags{}
	root := &cobra.Command{
		Use:          "linguactl",
		Short:        "LinguaXYZ dashboard client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to config file")
	root.PersistentFlags().BoolVar(&flags.DebugMode, "debug", false, "Enable debug logging")

	root.AddCommand(newVersionCmd(version, buildDate))
	root.AddCommand(newOpenCmd(flags))
	root.AddCommand(newAuthCmd(flags))
	root.AddCommand(newDashboardCmd(flags))
	root.AddCommand(newRefreshCmd(flags))
	root.AddCommand(newGroupsCmd(flags))
	root.AddCommand(newInviteCmd(flags))
	root.AddCommand(newBuyCmd(flags))
	root.AddCommand(newWatchCmd(flags))
	return root
}

// withApp builds the engine for one command invocation and tears it down
// afterwards.
func withApp(flags *structures.CliFlags, fn func(ctx context.Context, app *internal.App) error) error {
	app, err := di.InitApp(flags)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(context.Background(), app)
}
