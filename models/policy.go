// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// PolicyFrame carries relay-pushed operational policy.
//
// Both fields are optional and their values are relay-controlled, so they
// are kept as raw JSON here and decoded field by field by the policy
// manager: a present, well-typed field overwrites the stored value; an
// absent or mistyped field leaves the prior value in place.
type PolicyFrame struct {
	Type          FrameType `json:"type"`
	SchemaVersion int       `json:"schema_version"`

	// SupersedeOnRegister, when true, tells the relay to drop older sink
	// registrations in favor of this one. Expected type: boolean.
	SupersedeOnRegister json.RawMessage `json:"supersede_on_register,omitempty"`

	// MaxJobBytes advertises the relay's payload size guideline.
	// Expected type: number.
	MaxJobBytes json.RawMessage `json:"max_job_bytes,omitempty"`
}
