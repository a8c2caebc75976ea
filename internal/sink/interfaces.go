// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package sink implements the relay-facing client core of go-snip-sink.
//
// The package is composed of small collaborators owned by one [Client]: an
// explicit lifecycle [StateMachine], a [ConnectionManager] with a single
// debounced reconnect timer, a [PolicyManager] tracking relay-pushed policy,
// and a [JobManager] enforcing at-most-once job acknowledgment with per-job
// timeouts. The Client decodes relay frames, dispatches insert jobs to an
// external [Executor], and answers with acks over the [Transport].
//
// All mutable client state is confined behind one mutex; transport callbacks
// and timers funnel their events through the Client's internal queue so
// transitions stay strictly ordered.
package sink

import (
	"context"

	"github.com/MKhiriev/go-snip-sink/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sink_mock.go -package=mock

// TransportHandlers bundles the callbacks a [Transport] fires for connection
// lifecycle and inbound messages. Handlers are invoked from the transport's
// own goroutines; implementations must not call back into the transport
// while holding their own locks.
type TransportHandlers struct {
	// OnOpen fires once when the connection is established.
	OnOpen func()

	// OnMessage fires once per inbound message, in delivery order.
	OnMessage func(raw []byte)

	// OnError fires on dial failures and abnormal connection errors.
	OnError func(err error)

	// OnClose fires once when an established connection ends.
	OnClose func()
}

// Transport is a persistent, message-oriented, bidirectional connection to
// the snippet relay.
type Transport interface {
	// Connect opens the connection asynchronously and wires handlers.
	// Calling Connect while the connection is open or a dial is in flight
	// is a no-op. Outcomes are reported through the handlers only: OnOpen
	// on success, OnError on dial failure.
	Connect(handlers TransportHandlers)

	// Send writes one message. It reports false, without buffering, when
	// the connection is not open or the write fails.
	Send(data []byte) bool

	// Close tears the connection down and detaches the handlers; no
	// handler fires after Close returns.
	Close()

	// IsOpen reports whether the connection is currently established.
	IsOpen() bool
}

// Executor performs one insert job against the local delivery surface.
// The Client runs Execute on its own goroutine per job, bounded by the
// configured job timeout through ctx; a nil return acknowledges the job as
// ok, an error as failed.
type Executor interface {
	Execute(ctx context.Context, job models.InsertTextFrame) error
}
