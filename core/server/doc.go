// Package server hosts the dashboard on a local TCP port.
//
// New builds a Fiber application with the RayID, request logging and
// websocket origin middleware, then mounts the registered features at /.
// Run binds the port, opens the dashboard in the default browser and serves
// until its context is cancelled.
//
// # Errors
//
// Run returns ErrPortInUse when the port is already bound. Nothing is left
// listening in that case.
//
// # Verbosity
//
// ApplyLogLevel configures Fiber's own logger. PublishEnvironment exports the
// dashboard's resource mode and verbosity variables; it is the single point
// where process environment is written.
package server
