package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/config"
)

func NewRootCmd(version string) *cobra.Command {
	var homeOverride string

	cmd := &cobra.Command{
		Use:          "trashduty",
		Short:        "Trashduty — weekly trash duty rotation with SMS notifications",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			home, err := config.ResolveHome(homeOverride)
			if err != nil {
				return err
			}
			cmd.SetContext(config.WithHome(cmd.Context(), home))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&homeOverride, "home", "", "Override trashduty home directory (default: ~/.trashduty, env: TRASHDUTY_HOME)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newStopCmd())
	cmd.AddCommand(newStatusCmd())

	cmd.AddCommand(newTickCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newScheduleCmd())
	cmd.AddCommand(newRosterCmd())

	// Hidden internal subcommand used by `trashduty serve` for background mode.
	cmd.AddCommand(newDaemonCmd())

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.SetVersionTemplate("{{.Version}}\n")
	if version != "" {
		cmd.Version = version
	} else {
		cmd.Version = "dev"
	}

	return cmd
}
