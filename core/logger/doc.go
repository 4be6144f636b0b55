// Package logger provides a structured logging facility based on Zap.
//
// It owns the user-facing level vocabulary (CRITICAL, ERROR, WARNING, INFO,
// DEBUG) accepted by the --log flag, and translates one such level into both
// the zap severity of the process logger and the verbosity vocabulary of the
// embedded web server (see Level.ServerLevel).
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it to the
// log entry, so every log line of a request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "INFO", Format: "console"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
