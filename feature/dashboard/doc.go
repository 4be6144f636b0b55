// Package dashboard is the directory-backed web application hosted by the
// launcher.
//
// The application directory (app/, compiled into the binary) holds the page
// template. The application is built with three positional arguments, the
// default directory, the update rate in seconds and the server port, and
// interprets them itself.
//
// # HTTP Endpoints
//
//   - GET / : The dashboard page. Plot libraries load from a public CDN.
//   - GET /ws : Websocket. Sends a snapshot of the watched directory on connect,
//     then again every update interval when the file listing changed.
//     The browser may send {"type":"directory","path":"..."} to watch another
//     directory on that connection.
//
// # Environment
//
// The launcher publishes the variables named in core/server. When Options
// leave them empty, DASHBOARD_RESOURCES and DASHBOARD_CLIENT_LOG_LEVEL are
// read from the process environment. DASHBOARD_LOG_LEVEL is not read here:
// it is exported for processes spawned alongside the dashboard, while Fiber
// itself receives the same level through server.ApplyLogLevel.
package dashboard
