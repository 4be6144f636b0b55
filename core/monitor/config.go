package monitor

// Config holds the settings forwarded to the dashboard application.
type Config struct {
	// DefaultDir is the directory scanned for simulation output. It is not
	// validated at launch; a missing directory is reported to the browser.
	DefaultDir string `mapstructure:"default_dir" default:"."`
	// UpdateRate is the number of seconds between directory scans.
	UpdateRate int `mapstructure:"update" default:"20"`
}

// Argv returns the positional arguments handed to the dashboard application:
// default directory, update rate and port, in that order.
func (c Config) Argv(port int) []any {
	return []any{c.DefaultDir, c.UpdateRate, port}
}
