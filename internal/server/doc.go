// Package server runs the daemon's local diagnostic HTTP server.
//
// It provides the [Server] lifecycle contract and a graceful net/http
// implementation around the chi router from internal/handler/http. Signal
// handling lives with the daemon application, which stops the server
// alongside the relay client and background workers.
package server
