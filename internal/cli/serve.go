package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/config"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/daemon"
)

func newServeCmd() *cobra.Command {
	var (
		port        int
		foreground  bool
		intervalSec float64
		pprofAddr   string
		envFile     string
		dbDriver    string
		dbURL       string
		rosterPath  string
		mirror      string
		enableOtel  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the trashduty daemon (dashboard API + weekly ticker)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := loadEnvFile(envFile); err != nil {
					return err
				}
			}
			home := config.MustHomeFrom(cmd.Context())

			opts := daemon.StartOptions{
				Home:        home,
				Port:        port,
				IntervalSec: intervalSec,
				PprofAddr:   pprofAddr,
				DBDriver:    dbDriver,
				DBURL:       dbURL,
				RosterPath:  rosterPath,
				Mirror:      mirror,
				EnableOtel:  enableOtel,
			}

			api := fmt.Sprintf("http://localhost:%d", port)

			if foreground {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting trashduty in foreground on %s\n", api)
				return daemon.StartForeground(cmd.Context(), opts)
			}

			pid, err := daemon.StartBackground(cmd.Context(), opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "trashduty started (pid %d)\n", pid)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "API: %s\n", api)
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 3917, "Port for the dashboard API")
	cmd.Flags().BoolVar(&foreground, "foreground", false, "Run in foreground (do not daemonize)")
	cmd.Flags().Float64Var(&intervalSec, "interval", 0, "Tick interval in seconds (0 = weekly)")
	cmd.Flags().StringVar(&pprofAddr, "pprof", "", "Enable pprof on address (e.g. 127.0.0.1:6060)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Load env vars from file (KEY=VALUE per line) before starting")
	cmd.Flags().StringVar(&dbDriver, "db-driver", "sqlite", "Store driver: sqlite or postgres")
	cmd.Flags().StringVar(&dbURL, "db-url", "", "DB connection string (for postgres; or set DATABASE_URL)")
	cmd.Flags().StringVar(&rosterPath, "roster", "", "Roster YAML file to sync and watch")
	cmd.Flags().StringVar(&mirror, "mirror", "", "Mirror broadcasts to a named sender (e.g. slack)")
	cmd.Flags().BoolVar(&enableOtel, "otel", true, "Enable OpenTelemetry metrics (Prometheus exporter, HTTP instrumentation)")

	return cmd
}

func newDaemonCmd() *cobra.Command {
	var (
		port        int
		intervalSec float64
		pprofAddr   string
		dbDriver    string
		dbURL       string
		rosterPath  string
		mirror      string
		enableOtel  bool
	)

	cmd := &cobra.Command{
		Use:    "daemon",
		Short:  "Internal: run daemon process",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			home := config.MustHomeFrom(cmd.Context())
			return daemon.StartForeground(cmd.Context(), daemon.StartOptions{
				Home:        home,
				Port:        port,
				IntervalSec: intervalSec,
				PprofAddr:   pprofAddr,
				DBDriver:    dbDriver,
				DBURL:       dbURL,
				RosterPath:  rosterPath,
				Mirror:      mirror,
				EnableOtel:  enableOtel,
			})
		},
	}

	cmd.Flags().IntVar(&port, "port", 3917, "Port for the dashboard API")
	cmd.Flags().Float64Var(&intervalSec, "interval", 0, "Tick interval in seconds (0 = weekly)")
	cmd.Flags().StringVar(&pprofAddr, "pprof", "", "Enable pprof on address (e.g. 127.0.0.1:6060)")
	cmd.Flags().StringVar(&dbDriver, "db-driver", "sqlite", "Store driver: sqlite or postgres")
	cmd.Flags().StringVar(&dbURL, "db-url", "", "DB connection string (for postgres; or set DATABASE_URL)")
	cmd.Flags().StringVar(&rosterPath, "roster", "", "Roster YAML file to sync and watch")
	cmd.Flags().StringVar(&mirror, "mirror", "", "Mirror broadcasts to a named sender (e.g. slack)")
	cmd.Flags().BoolVar(&enableOtel, "otel", true, "Enable OpenTelemetry metrics")

	return cmd
}

func loadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i := strings.Index(line, "=")
		if i <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		value := strings.TrimSpace(line[i+1:])
		if key != "" {
			_ = os.Setenv(key, value)
		}
	}
	return sc.Err()
}
