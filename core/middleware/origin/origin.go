package origin

import (
	"net/url"
	"strings"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Config holds configuration for the origin guard.
type Config struct {
	// Allowed lists the accepted origin hosts as host:port, e.g. localhost:5100.
	Allowed []string
}

// New returns a middleware rejecting websocket upgrades whose Origin host is
// not in cfg.Allowed. Plain HTTP requests pass through untouched.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		if Allowed(c.Get(fiber.HeaderOrigin), cfg.Allowed) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "websocket origin not allowed",
		})
	}
}

// Allowed reports whether the host of the origin header value matches one of
// the allowed host:port entries. A missing origin is never allowed.
func Allowed(origin string, allowed []string) bool {
	if origin == "" {
		return false
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	for _, host := range allowed {
		if strings.EqualFold(u.Host, host) {
			return true
		}
	}
	return false
}
