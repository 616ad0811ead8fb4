package daemon

// StartOptions configures the daemon (home, port, tick interval, DB, notifier mirror).
type StartOptions struct {
	Home        string
	Port        int
	IntervalSec float64 // tick interval in seconds; 0 means weekly
	PprofAddr   string
	DBDriver    string // "sqlite" (default) or "postgres"
	DBURL       string // for postgres: connection string (or DATABASE_URL env)
	RosterPath  string // if set, sync and watch this roster file
	Mirror      string // optional broadcast mirror sender, e.g. "slack"
	EnableOtel  bool   // enable OpenTelemetry metrics (Prometheus exporter + HTTP instrumentation)
}

// StatusInfo is the result of Status (running or not, PID, listen addr).
type StatusInfo struct {
	Running bool
	PID     int
	Addr    string
}
