// Package models defines the JSON frames exchanged with the snippet relay
// and the shared data types used across the go-snip-sink daemon.
//
// One frame is one JSON object per transport message. Every frame carries a
// "type" discriminator and the protocol "schema_version".
package models

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion is the protocol schema revision this sink speaks.
// Every outgoing frame carries it.
const SchemaVersion = 1

// InsertCapability is the single capability this sink advertises on register.
const InsertCapability = "insert"

// FrameType discriminates the JSON frames exchanged with the relay.
type FrameType string

const (
	// FrameRegister announces the sink to the relay (client -> relay).
	FrameRegister FrameType = "register"
	// FramePolicy carries relay-pushed operational policy (relay -> client).
	FramePolicy FrameType = "policy"
	// FramePing is the relay's liveness probe (relay -> client).
	FramePing FrameType = "ping"
	// FramePong answers a ping (client -> relay).
	FramePong FrameType = "pong"
	// FrameInsertText delivers a text-insertion job (relay -> client).
	FrameInsertText FrameType = "insert_text"
	// FrameAck reports a job's terminal outcome (client -> relay).
	FrameAck FrameType = "ack"
)

// RegisterFrame announces the sink to the relay right after a connection
// opens. Registration is fire-and-forget: the relay sends no dedicated
// confirmation frame.
type RegisterFrame struct {
	Type          FrameType `json:"type"`
	SchemaVersion int       `json:"schema_version"`

	// Version is the sink's own build version string.
	Version string `json:"version"`

	// Capabilities lists the job kinds the sink accepts.
	Capabilities []string `json:"capabilities"`

	// Providers lists the delivery adapters configured on this sink.
	Providers []string `json:"providers"`
}

// NewRegisterFrame constructs a [RegisterFrame] advertising the insert
// capability and the given delivery providers.
func NewRegisterFrame(version string, providers []string) RegisterFrame {
	return RegisterFrame{
		Type:          FrameRegister,
		SchemaVersion: SchemaVersion,
		Version:       version,
		Capabilities:  []string{InsertCapability},
		Providers:     providers,
	}
}

// PingFrame is the relay's liveness probe. It carries no payload beyond the
// envelope.
type PingFrame struct {
	Type          FrameType `json:"type"`
	SchemaVersion int       `json:"schema_version"`
}

// PongFrame answers a [PingFrame].
type PongFrame struct {
	Type          FrameType `json:"type"`
	SchemaVersion int       `json:"schema_version"`
}

// NewPongFrame constructs a [PongFrame].
func NewPongFrame() PongFrame {
	return PongFrame{Type: FramePong, SchemaVersion: SchemaVersion}
}

// frameProbe peeks at the type discriminator without decoding the full frame.
type frameProbe struct {
	Type FrameType `json:"type"`
}

// ParseFrame decodes one raw relay message into its concrete inbound frame
// type: *PolicyFrame, *PingFrame, or *InsertTextFrame.
//
// Errors:
//   - [ErrMalformedFrame]: raw is not valid JSON or does not decode into its
//     declared frame type;
//   - [ErrUnknownFrameType]: the type discriminator is absent or names a
//     frame the sink does not handle (including client->relay types echoed
//     back at us).
//
// Callers log these errors and drop the message; the connection stays open.
func ParseFrame(raw []byte) (any, error) {
	var probe frameProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	switch probe.Type {
	case FramePolicy:
		var frame PolicyFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			return nil, fmt.Errorf("%w: policy: %v", ErrMalformedFrame, err)
		}
		return &frame, nil
	case FramePing:
		var frame PingFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			return nil, fmt.Errorf("%w: ping: %v", ErrMalformedFrame, err)
		}
		return &frame, nil
	case FrameInsertText:
		var frame InsertTextFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			return nil, fmt.Errorf("%w: insert_text: %v", ErrMalformedFrame, err)
		}
		return &frame, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFrameType, probe.Type)
	}
}
