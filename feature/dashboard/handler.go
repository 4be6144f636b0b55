package dashboard

import (
	"fmt"
	"time"

	"dashmd/core/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const writeTimeout = 10 * time.Second

// Handler serves the dashboard page and its live update stream.
type Handler struct {
	app    *Application
	logger *zap.Logger

	// onStreamEnd runs after HandleStream has released its reader.
	onStreamEnd func()
}

// NewHandler creates a new HTTP handler.
func NewHandler(app *Application) *Handler {
	return &Handler{app: app, logger: app.logger}
}

// RegisterRoutes mounts the page at / and the websocket at /ws.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleIndex)
	router.Get(WebsocketPath, h.HandleUpgrade, websocket.New(h.HandleStream, websocket.Config{
		Origins: []string{
			fmt.Sprintf("http://localhost:%d", h.app.Port()),
			fmt.Sprintf("https://localhost:%d", h.app.Port()),
		},
	}))
}

// HandleIndex renders the dashboard page.
func (h *Handler) HandleIndex(c *fiber.Ctx) error {
	page, err := h.app.Render()
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to render page", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("dashboard unavailable")
	}
	c.Type("html", "utf-8")
	return c.Send(page)
}

// HandleUpgrade only lets websocket handshakes through to HandleStream.
func (h *Handler) HandleUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// HandleStream pushes a snapshot on connect and then whenever the watched
// directory changes, checking every update interval.
func (h *Handler) HandleStream(conn *websocket.Conn) {
	l := h.logger.With(zap.String("remote", conn.RemoteAddr().String()))
	l.Debug("Dashboard client connected")
	defer l.Debug("Dashboard client disconnected")

	incoming := make(chan ClientMessage)
	quit := make(chan struct{})
	readerDone := make(chan struct{})

	// The read loop owns reads; this goroutine owns writes.
	readErr := make(chan error, 1)
	go func() {
		defer close(readerDone)
		for {
			var msg ClientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				readErr <- err
				return
			}
			select {
			case incoming <- msg:
			case <-quit:
				return
			}
		}
	}()

	// The connection is pooled once this handler returns, so the reader must
	// be gone by then. A past deadline unblocks a pending ReadJSON.
	defer func() {
		close(quit)
		_ = conn.SetReadDeadline(time.Now())
		<-readerDone
		if h.onStreamEnd != nil {
			h.onStreamEnd()
		}
	}()

	w := newWatcher(h.app.Directory())
	send := func(force bool) error {
		msg, ok := w.poll(force)
		if !ok {
			return nil
		}
		if msg.Type == MessageError {
			l.Warn("Directory scan failed", zap.String("error", msg.Error))
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		return conn.WriteJSON(msg)
	}

	if err := send(true); err != nil {
		l.Debug("Initial write failed", zap.Error(err))
		return
	}

	ticker := time.NewTicker(h.app.UpdateInterval())
	defer ticker.Stop()

	for {
		select {
		case err := <-readErr:
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				l.Warn("Dashboard connection closed unexpectedly", zap.Error(err))
			}
			return
		case msg := <-incoming:
			if msg.Type != MessageDirectory || msg.Path == "" {
				l.Debug("Ignoring client message", zap.String("type", msg.Type))
				continue
			}
			l.Info("Switching watched directory", zap.String("directory", msg.Path))
			w.switchTo(msg.Path)
			if err := send(true); err != nil {
				return
			}
		case <-ticker.C:
			if err := send(false); err != nil {
				l.Debug("Write failed", zap.Error(err))
				return
			}
		}
	}
}
