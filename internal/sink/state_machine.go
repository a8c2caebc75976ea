// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package sink

import (
	"github.com/MKhiriev/go-snip-sink/internal/logger"
)

// State is the lifecycle state of the sink client.
type State int

const (
	// StateDisconnected is the initial state before Start.
	StateDisconnected State = iota

	// StateConnecting means a transport dial is in flight.
	StateConnecting

	// StateConnected means the transport is open but the sink has not
	// announced itself yet.
	StateConnected

	// StateRegistered means the register frame went out on the current
	// connection; jobs are acknowledged only in this state.
	StateRegistered

	// StateReconnecting means the connection was lost and a debounced
	// reconnect is pending.
	StateReconnecting

	// StateStopped is terminal; a stopped client never leaves it.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateRegistered:
		return "registered"
	case StateReconnecting:
		return "reconnecting"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Event drives state machine transitions.
type Event int

const (
	// EventStart requests the client to begin connecting.
	EventStart Event = iota

	// EventStop requests a terminal shutdown.
	EventStop

	// EventConnectionOpened reports an established transport connection.
	EventConnectionOpened

	// EventConnectionClosed reports a closed transport connection.
	EventConnectionClosed

	// EventConnectionError reports a dial failure or an abnormal
	// connection error.
	EventConnectionError

	// EventRegistered reports that the register frame went out.
	EventRegistered

	// EventReconnectRequested reports that the reconnect timer fired.
	EventReconnectRequested
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	case EventConnectionOpened:
		return "connection_opened"
	case EventConnectionClosed:
		return "connection_closed"
	case EventConnectionError:
		return "connection_error"
	case EventRegistered:
		return "registered"
	case EventReconnectRequested:
		return "reconnect_requested"
	default:
		return "unknown"
	}
}

// Change describes one applied transition.
type Change struct {
	From  State
	To    State
	Event Event
}

// transitions is the full lifecycle table; (state, event) pairs absent here
// are ignored without a state change.
var transitions = map[State]map[Event]State{
	StateDisconnected: {
		EventStart: StateConnecting,
		EventStop:  StateStopped,
	},
	StateConnecting: {
		EventConnectionOpened: StateConnected,
		EventConnectionError:  StateReconnecting,
		EventConnectionClosed: StateReconnecting,
		EventStop:             StateStopped,
	},
	StateConnected: {
		EventRegistered:       StateRegistered,
		EventConnectionClosed: StateReconnecting,
		EventConnectionError:  StateReconnecting,
		EventStop:             StateStopped,
	},
	StateRegistered: {
		EventConnectionClosed: StateReconnecting,
		EventConnectionError:  StateReconnecting,
		EventStop:             StateStopped,
	},
	StateReconnecting: {
		EventStart:              StateConnecting,
		EventReconnectRequested: StateConnecting,
		EventStop:               StateStopped,
	},
	StateStopped: {},
}

// StateMachine holds the client lifecycle state and applies the transition
// table. It is not safe for concurrent use on its own; the owning Client
// serializes access behind its mutex.
type StateMachine struct {
	state  State
	notify func(Change)
	log    *logger.Logger
}

// NewStateMachine returns a StateMachine starting in StateDisconnected.
// notify, when non-nil, is invoked exactly once per applied transition.
func NewStateMachine(notify func(Change), log *logger.Logger) *StateMachine {
	return &StateMachine{
		state:  StateDisconnected,
		notify: notify,
		log:    log,
	}
}

// Transition applies event to the current state. A (state, event) pair
// absent from the table leaves the state untouched, logs the ignored event
// and reports false; an applied transition mutates the state and emits one
// notification.
func (m *StateMachine) Transition(event Event) (Change, bool) {
	next, ok := transitions[m.state][event]
	if !ok {
		m.log.Debug().
			Str("state", m.state.String()).
			Str("event", event.String()).
			Msg("event ignored in current state")
		return Change{}, false
	}

	change := Change{From: m.state, To: next, Event: event}
	m.state = next

	m.log.Debug().
		Str("from", change.From.String()).
		Str("to", change.To.String()).
		Str("event", event.String()).
		Msg("state changed")

	if m.notify != nil {
		m.notify(change)
	}

	return change, true
}

// Current returns the current state.
func (m *StateMachine) Current() State {
	return m.state
}

// IsConnected reports whether the transport-level connection is up,
// regardless of registration.
func (m *StateMachine) IsConnected() bool {
	return m.state == StateConnected || m.state == StateRegistered
}

// IsRegistered reports whether the sink announced itself on the current
// connection.
func (m *StateMachine) IsRegistered() bool {
	return m.state == StateRegistered
}
