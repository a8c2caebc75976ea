// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AckStatus is the terminal outcome reported for a job.
type AckStatus string

const (
	// AckOK reports successful execution.
	AckOK AckStatus = "ok"

	// AckRetry is reserved by the protocol; the sink never emits it.
	AckRetry AckStatus = "retry"

	// AckFailed reports failed execution or a job timeout.
	AckFailed AckStatus = "failed"
)

// AckFrame reports a job's terminal outcome to the relay.
// Each job is acknowledged at most once.
type AckFrame struct {
	Type          FrameType `json:"type"`
	SchemaVersion int       `json:"schema_version"`

	// ID is the job identifier from the originating insert_text frame.
	ID string `json:"id"`

	Status AckStatus `json:"status"`

	// Error describes the failure; null on success.
	Error *string `json:"error"`
}

// NewAckFrame constructs an [AckFrame]. An empty errMsg yields a null error
// field on the wire.
func NewAckFrame(id string, status AckStatus, errMsg string) AckFrame {
	frame := AckFrame{
		Type:          FrameAck,
		SchemaVersion: SchemaVersion,
		ID:            id,
		Status:        status,
	}
	if errMsg != "" {
		frame.Error = &errMsg
	}

	return frame
}
