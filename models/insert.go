package models

import "fmt"

// PlacementType defines where inside the target surface a job's text goes.
type PlacementType string

const (
	// PlacementTop inserts the text before any existing content.
	PlacementTop PlacementType = "top"

	// PlacementBottom appends the text after any existing content.
	PlacementBottom PlacementType = "bottom"

	// PlacementCursor inserts the text at the current cursor position.
	PlacementCursor PlacementType = "cursor"
)

// Placement wraps the placement selector of an insert payload.
// A null placement on the wire leaves the position to the executor.
type Placement struct {
	Type PlacementType `json:"type"`
}

// Source identifies where a job was authored upstream of the relay.
type Source struct {
	// Client names the originating client application.
	Client string `json:"client"`

	// Label is the human-readable name of the originating snippet.
	Label string `json:"label"`

	// Path locates the snippet within the originating client's store.
	Path string `json:"path"`
}

// Target narrows which delivery provider should execute the job.
// A null target lets the sink use its default provider.
type Target struct {
	// Provider names the requested delivery adapter.
	Provider string `json:"provider"`

	// SessionPolicy tells the provider how to pick or create a session.
	SessionPolicy string `json:"session_policy"`
}

// InsertPayload is the body of an insert_text job.
type InsertPayload struct {
	// Text is the snippet text to insert.
	Text string `json:"text"`

	// Placement selects where the text goes; null defers to the executor.
	Placement *Placement `json:"placement"`

	// Source identifies the job's origin.
	Source Source `json:"source"`

	// Target optionally narrows the delivery provider.
	Target *Target `json:"target"`

	// Metadata carries optional relay-defined annotations.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// InsertTextFrame delivers one text-insertion job from the relay.
type InsertTextFrame struct {
	Type          FrameType `json:"type"`
	SchemaVersion int       `json:"schema_version"`

	// ID is the opaque job identifier; acks refer back to it.
	ID string `json:"id"`

	Payload InsertPayload `json:"payload"`
}

// Validate reports whether the frame can be dispatched as a job.
// A frame with an empty id or an unrecognized placement selector cannot be
// acknowledged meaningfully and is dropped as a protocol error.
func (f *InsertTextFrame) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("%w: empty job id", ErrInvalidInsertFrame)
	}
	if p := f.Payload.Placement; p != nil {
		switch p.Type {
		case PlacementTop, PlacementBottom, PlacementCursor:
		default:
			return fmt.Errorf("%w: placement %q", ErrInvalidInsertFrame, p.Type)
		}
	}

	return nil
}
