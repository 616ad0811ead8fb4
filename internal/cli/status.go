package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/config"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/daemon"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show trashduty daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := config.MustHomeFrom(cmd.Context())
			st, err := daemon.Status(cmd.Context(), home)
			if err != nil {
				return err
			}
			if !st.Running {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "trashduty not running")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "trashduty running (pid %d, addr %s)\n", st.PID, st.Addr)
			return nil
		},
	}
	return cmd
}
