// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//   - Origin: Restricts websocket upgrades to the dashboard's own origin
//     (localhost:<port>), rejecting every other origin with 403.
//
// These middleware components are registered globally by the server before
// any feature routes are loaded.
package middleware
