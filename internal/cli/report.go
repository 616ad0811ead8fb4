package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report that this week's trash duty was missed",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd, addr)
			if err != nil {
				return err
			}
			rep, err := c.Report(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rep.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Daemon address (default: from the running daemon)")
	return cmd
}
