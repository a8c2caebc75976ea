package sink

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/MKhiriev/go-snip-sink/internal/logger"
	"github.com/MKhiriev/go-snip-sink/models"
)

// Policies is the relay-pushed operational policy the sink currently honors.
type Policies struct {
	// SupersedeOnRegister mirrors the relay's registration takeover flag.
	SupersedeOnRegister bool `json:"supersede_on_register"`

	// MaxJobBytes is the relay's advisory payload ceiling; nil when the
	// relay has not pushed one on this connection.
	MaxJobBytes *int64 `json:"max_job_bytes"`
}

// PolicyManager holds the policy for the current connection. Updates are
// tolerant per field: only a present, correctly typed field overwrites the
// stored value; everything else keeps the prior value. Safe for concurrent
// use.
type PolicyManager struct {
	log *logger.Logger

	mu       sync.RWMutex
	policies Policies
}

// NewPolicyManager returns a PolicyManager holding the defaults.
func NewPolicyManager(log *logger.Logger) *PolicyManager {
	return &PolicyManager{log: log}
}

// Apply merges one policy frame into the stored policy, field by field.
// Absent, null or mistyped fields keep their prior value; rejected fields
// are logged.
func (p *PolicyManager) Apply(frame *models.PolicyFrame) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if present(frame.SupersedeOnRegister) {
		var v bool
		if err := json.Unmarshal(frame.SupersedeOnRegister, &v); err != nil {
			p.log.Warn().
				RawJSON("value", frame.SupersedeOnRegister).
				Msg("ignoring mistyped supersede_on_register policy field")
		} else {
			p.policies.SupersedeOnRegister = v
		}
	}

	if present(frame.MaxJobBytes) {
		var v int64
		if err := json.Unmarshal(frame.MaxJobBytes, &v); err != nil {
			p.log.Warn().
				RawJSON("value", frame.MaxJobBytes).
				Msg("ignoring mistyped max_job_bytes policy field")
		} else {
			p.policies.MaxJobBytes = &v
		}
	}

	p.log.Debug().
		Bool("supersede_on_register", p.policies.SupersedeOnRegister).
		Msg("policy applied")
}

// Reset restores the defaults. The client calls it whenever a fresh
// connection opens, before registering.
func (p *PolicyManager) Reset() {
	p.mu.Lock()
	p.policies = Policies{}
	p.mu.Unlock()
}

// Snapshot returns a copy of the current policy.
func (p *PolicyManager) Snapshot() Policies {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := p.policies
	if p.policies.MaxJobBytes != nil {
		v := *p.policies.MaxJobBytes
		out.MaxJobBytes = &v
	}

	return out
}

// MaxJobBytes returns the advisory payload ceiling and whether the relay
// pushed one on this connection.
func (p *PolicyManager) MaxJobBytes() (int64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.policies.MaxJobBytes == nil {
		return 0, false
	}

	return *p.policies.MaxJobBytes, true
}

// present reports whether a raw policy field was sent with a usable value;
// JSON null counts as absent.
func present(raw json.RawMessage) bool {
	return raw != nil && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
