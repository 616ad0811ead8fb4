package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/config"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/daemon"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/pkg/client"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/pkg/models"
)

// apiClient resolves a client for the running daemon, honoring an explicit
// --addr override.
func apiClient(cmd *cobra.Command, addrOverride string) (*client.Client, error) {
	addr := addrOverride
	if addr == "" {
		home := config.MustHomeFrom(cmd.Context())
		st, err := daemon.Status(cmd.Context(), home)
		if err != nil {
			return nil, err
		}
		if !st.Running {
			return nil, errors.New("trashduty is not running (start it with `trashduty serve`)")
		}
		addr = st.Addr
	}
	// The daemon binds 0.0.0.0; dial it on loopback.
	addr = strings.Replace(addr, "0.0.0.0", "localhost", 1)
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return client.New(addr, os.Getenv("TRASHDUTY_API_KEY")), nil
}

func newScheduleCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show who is on duty, who is upcoming, and the penalty status",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd, addr)
			if err != nil {
				return err
			}
			sched, err := c.Schedule(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "On duty:   %s\n", sched.OnDuty.Name)
			_, _ = fmt.Fprintf(out, "Last week: %s\n", sched.LastWeek.Name)
			if len(sched.Upcoming) > 0 {
				names := make([]string, len(sched.Upcoming))
				for i, m := range sched.Upcoming {
					names[i] = m.Name
				}
				_, _ = fmt.Fprintf(out, "Upcoming:  %s\n", strings.Join(names, ", "))
			}
			switch sched.PenaltyInfo.Status {
			case models.PenaltyActive:
				_, _ = fmt.Fprintf(out, "Penalty:   %s on duty for %d more week(s)\n",
					sched.PenaltyInfo.Offender, sched.PenaltyInfo.WeeksRemaining)
			case models.PenaltyPending:
				_, _ = fmt.Fprintf(out, "Penalty:   %s owes %d week(s)\n",
					sched.PenaltyInfo.Offender, sched.PenaltyInfo.WeeksRemaining)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Daemon address (default: from the running daemon)")
	return cmd
}
