package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/roster"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/store"
)

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the rotation roster",
	}
	cmd.AddCommand(newRosterImportCmd())
	cmd.AddCommand(newRosterShowCmd())
	return cmd
}

func newRosterImportCmd() *cobra.Command {
	var (
		dbDriver string
		dbURL    string
	)

	cmd := &cobra.Command{
		Use:   "import <members.yaml>",
		Short: "Load a roster file into the store (order is rotation order)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd, dbDriver, dbURL)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if err := roster.Sync(cmd.Context(), st, args[0]); err != nil {
				return err
			}
			members, err := st.Roster(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d members\n", len(members))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbDriver, "db-driver", "sqlite", "Store driver: sqlite or postgres")
	cmd.Flags().StringVar(&dbURL, "db-url", "", "DB connection string (for postgres; or set DATABASE_URL)")
	return cmd
}

func newRosterShowCmd() *cobra.Command {
	var (
		dbDriver string
		dbURL    string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored roster in rotation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd, dbDriver, dbURL)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			members, err := st.Roster(cmd.Context())
			if err != nil {
				if errors.Is(err, store.ErrNoRoster) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No roster imported yet (use `trashduty roster import`)")
					return nil
				}
				return err
			}
			pointer, err := st.Pointer(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, m := range members {
				marker := " "
				if i == pointer {
					marker = "*"
				}
				_, _ = fmt.Fprintf(out, "%s %d. %s (%s)\n", marker, i+1, m.Name, m.Phone)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbDriver, "db-driver", "sqlite", "Store driver: sqlite or postgres")
	cmd.Flags().StringVar(&dbURL, "db-url", "", "DB connection string (for postgres; or set DATABASE_URL)")
	return cmd
}
