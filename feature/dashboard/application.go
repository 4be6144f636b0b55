package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"time"

	"dashmd/core/server"
	"dashmd/core/utils"

	"go.uber.org/zap"
)

const (
	// WebsocketPath is where live updates are served, relative to the app root.
	WebsocketPath = "/ws"
	// DefaultUpdateRate applies when the forwarded update rate is not positive.
	DefaultUpdateRate = 20
)

//go:embed app
var embedded embed.FS

// Dir returns the application directory compiled into the binary.
func Dir() fs.FS {
	sub, err := fs.Sub(embedded, "app")
	if err != nil {
		panic(err)
	}
	return sub
}

// Options configure how the application renders its page.
type Options struct {
	// Resources selects where client assets load from. Only "cdn" is supported.
	Resources string
	// ClientLogLevel is the browser-side log level (fatal, error, warn, info, debug).
	ClientLogLevel string
	Logger         *zap.Logger
}

// Application is the directory-backed dashboard. It is built once from an
// application directory and the positional arguments it was launched with.
type Application struct {
	directory  string
	updateRate int
	port       int

	resources      string
	clientLogLevel string
	index          *template.Template
	logger         *zap.Logger
}

// NewApplication builds the dashboard from dir, which must hold index.html.
// argv carries the default directory, the update rate in seconds and the
// server port; the values are converted loosely, as they arrive untyped.
func NewApplication(dir fs.FS, argv []any, opts Options) (*Application, error) {
	if len(argv) != 3 {
		return nil, fmt.Errorf("dashboard expects 3 arguments (directory, update rate, port), got %d", len(argv))
	}

	index, err := template.ParseFS(dir, "index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard page: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &Application{
		directory:      utils.ToString(argv[0]),
		updateRate:     utils.ToInt(argv[1]),
		port:           utils.ToInt(argv[2]),
		resources:      firstNonEmpty(opts.Resources, os.Getenv(server.EnvResources), server.ResourcesCDN),
		clientLogLevel: firstNonEmpty(opts.ClientLogLevel, os.Getenv(server.EnvClientLogLevel), "info"),
		index:          index,
		logger:         logger,
	}

	if app.updateRate <= 0 {
		logger.Warn("Invalid update rate, using default",
			zap.Int("requested", app.updateRate),
			zap.Int("default", DefaultUpdateRate))
		app.updateRate = DefaultUpdateRate
	}
	if app.resources != server.ResourcesCDN {
		logger.Warn("Unsupported resource mode, loading assets from CDN", zap.String("mode", app.resources))
		app.resources = server.ResourcesCDN
	}

	return app, nil
}

// Directory returns the directory watched by default.
func (a *Application) Directory() string { return a.directory }

// UpdateInterval returns the delay between two scans.
func (a *Application) UpdateInterval() time.Duration {
	return time.Duration(a.updateRate) * time.Second
}

// Port returns the port the application was told it is served on.
func (a *Application) Port() int { return a.port }

type pageData struct {
	Directory      string
	UpdateRate     int
	Port           int
	WebsocketPath  string
	Resources      string
	ClientLogLevel string
}

// Render executes the index page.
func (a *Application) Render() ([]byte, error) {
	var buf bytes.Buffer
	err := a.index.Execute(&buf, pageData{
		Directory:      a.directory,
		UpdateRate:     a.updateRate,
		Port:           a.port,
		WebsocketPath:  WebsocketPath,
		Resources:      a.resources,
		ClientLogLevel: a.clientLogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render dashboard page: %w", err)
	}
	return buf.Bytes(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
