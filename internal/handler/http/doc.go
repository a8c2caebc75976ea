// Package http implements the local diagnostic HTTP API of the sink daemon.
//
// It exposes route wiring, request handlers, and middleware for the small
// REST surface used to observe the daemon (health, version, relay status)
// and to drive batch delivery by hand. Cross-cutting concerns such as
// request tracing and access logging are handled in this package before
// requests reach the handlers.
//
// The API is meant to be bound to loopback only; it carries no
// authentication of its own.
package http
