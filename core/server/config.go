package server

import "fmt"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port int `mapstructure:"port" default:"5100"`
	// OpenBrowser opens the dashboard in the default browser once serving.
	OpenBrowser bool `mapstructure:"open_browser" default:"true"`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AllowedOrigin returns the only host:port accepted for websocket upgrades.
func (c Config) AllowedOrigin() string {
	return fmt.Sprintf("localhost:%d", c.Port)
}

// URL returns the browser address of path on this server.
func (c Config) URL(path string) string {
	return fmt.Sprintf("http://localhost:%d%s", c.Port, path)
}
