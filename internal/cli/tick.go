package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/config"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/duty"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/notify"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/store"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/store/postgres"
)

// openStore opens the configured store for commands that work on state
// directly (tick, roster). SQLite's busy timeout and the Postgres advisory
// lock keep this safe next to a running daemon.
func openStore(cmd *cobra.Command, dbDriver, dbURL string) (store.Store, error) {
	if dbDriver == "postgres" {
		return postgres.Open(dbURL)
	}
	home := config.MustHomeFrom(cmd.Context())
	return store.Open(home)
}

func newTickCmd() *cobra.Command {
	var (
		dbDriver string
		dbURL    string
		mirror   string
	)

	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Advance the rotation one week and notify everyone (for cron)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd, dbDriver, dbURL)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			svc := &duty.Service{
				Store:    st,
				Registry: notify.FromEnv(os.Getenv),
				Mirror:   mirror,
			}
			res, err := svc.Tick(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Tick applied: %s is on duty (pointer %d)\n", res.State.OnDuty().Name, res.State.Pointer)
			for _, r := range res.Results {
				if r.Delivered {
					_, _ = fmt.Fprintf(out, "  notified %s\n", r.To)
				} else {
					_, _ = fmt.Fprintf(out, "  failed %s: %s\n", r.To, r.Error)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbDriver, "db-driver", "sqlite", "Store driver: sqlite or postgres")
	cmd.Flags().StringVar(&dbURL, "db-url", "", "DB connection string (for postgres; or set DATABASE_URL)")
	cmd.Flags().StringVar(&mirror, "mirror", "", "Mirror the broadcast to a named sender (e.g. slack)")
	return cmd
}
