// Package server wires and runs the application's transport server.
//
// It provides orchestration for the HTTP server lifecycle, including
// startup, signal handling, and graceful shutdown of the REST API and the
// WebSocket broadcast channel it carries.
package server
