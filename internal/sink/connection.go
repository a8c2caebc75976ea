package sink

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-snip-sink/internal/logger"
)

// DefaultReconnectDelay is the debounce window between losing a connection
// and the next dial attempt.
const DefaultReconnectDelay = 3 * time.Second

// ConnectionManager owns the Transport and the single reconnect timer.
// At most one reconnect timer is armed at any time; connecting or
// disconnecting cancels it. Safe for concurrent use.
type ConnectionManager struct {
	transport Transport
	delay     time.Duration
	log       *logger.Logger

	mu          sync.Mutex
	handlers    TransportHandlers
	hasHandlers bool
	reconnect   *time.Timer
	onReconnect func()
}

// NewConnectionManager wraps transport with reconnect scheduling. A
// non-positive delay selects DefaultReconnectDelay.
func NewConnectionManager(transport Transport, delay time.Duration, log *logger.Logger) *ConnectionManager {
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}

	return &ConnectionManager{
		transport: transport,
		delay:     delay,
		log:       log,
	}
}

// OnReconnect registers the hook invoked when the reconnect timer fires.
// When no hook is set the manager redials directly with the last stored
// handlers.
func (c *ConnectionManager) OnReconnect(hook func()) {
	c.mu.Lock()
	c.onReconnect = hook
	c.mu.Unlock()
}

// Connect stores handlers as the reconnect target, cancels any pending
// reconnect timer and opens the transport. The transport itself ignores
// Connect while open or dialing.
func (c *ConnectionManager) Connect(handlers TransportHandlers) {
	c.mu.Lock()
	c.handlers = handlers
	c.hasHandlers = true
	c.stopTimerLocked()
	c.mu.Unlock()

	c.transport.Connect(handlers)
}

// Disconnect cancels any pending reconnect, forgets the stored handlers and
// closes the transport.
func (c *ConnectionManager) Disconnect() {
	c.mu.Lock()
	c.stopTimerLocked()
	c.handlers = TransportHandlers{}
	c.hasHandlers = false
	c.mu.Unlock()

	c.transport.Close()
}

// Send forwards one message to the transport. It reports false and logs
// when the message could not be written.
func (c *ConnectionManager) Send(data []byte) bool {
	if !c.transport.Send(data) {
		c.log.Warn().Int("bytes", len(data)).Msg("message not sent: connection not open")
		return false
	}

	return true
}

// ScheduleReconnect arms the debounced reconnect timer. Re-arming while a
// timer is already pending is a no-op.
func (c *ConnectionManager) ScheduleReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reconnect != nil {
		c.log.Debug().Msg("reconnect already scheduled")
		return
	}

	c.log.Info().Dur("delay", c.delay).Msg("scheduling reconnect")
	c.reconnect = time.AfterFunc(c.delay, c.fireReconnect)
}

// IsConnected reports the transport's open state only, not protocol
// registration.
func (c *ConnectionManager) IsConnected() bool {
	return c.transport.IsOpen()
}

func (c *ConnectionManager) fireReconnect() {
	c.mu.Lock()
	c.reconnect = nil
	hook := c.onReconnect
	handlers := c.handlers
	hasHandlers := c.hasHandlers
	c.mu.Unlock()

	if hook != nil {
		hook()
		return
	}
	if hasHandlers {
		c.transport.Connect(handlers)
	}
}

func (c *ConnectionManager) stopTimerLocked() {
	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
}
