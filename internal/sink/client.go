package sink

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/MKhiriev/go-snip-sink/internal/logger"
	"github.com/MKhiriev/go-snip-sink/models"
)

// Config carries the client identity and tuning knobs.
type Config struct {
	// Version is the sink version advertised in the register frame.
	Version string

	// Providers lists the delivery providers the sink can serve.
	Providers []string

	// JobTimeout bounds each job's execution; non-positive selects
	// DefaultJobTimeout.
	JobTimeout time.Duration

	// ReconnectDelay is the debounce interval between a lost connection
	// and the redial; non-positive selects DefaultReconnectDelay.
	ReconnectDelay time.Duration

	// OnStateChange, when non-nil, observes every applied transition. It
	// runs on the dispatching goroutine with no client lock held.
	OnStateChange func(Change)
}

// Client orchestrates the sink lifecycle: it owns the state machine, the
// connection, the relay policies and the job ledger, and it is the single
// consumer of incoming frames.
//
// Events are funneled through an internal queue drained by one goroutine at
// a time. A state entry action that needs a follow-up transition (Connected
// immediately registers) enqueues the event instead of recursing, so the
// lock is never re-entered and transitions stay strictly ordered.
type Client struct {
	log       *logger.Logger
	version   string
	providers []string

	conn     *ConnectionManager
	policies *PolicyManager
	jobs     *JobManager
	executor Executor

	jobTimeout    time.Duration
	onStateChange func(Change)

	mu       sync.Mutex
	sm       *StateMachine
	queue    []Event
	draining bool
}

// NewClient wires a Client around the given transport and job executor.
func NewClient(transport Transport, executor Executor, cfg Config, log *logger.Logger) (*Client, error) {
	if transport == nil {
		return nil, ErrNoTransport
	}
	if executor == nil {
		return nil, ErrNoExecutor
	}

	jobTimeout := cfg.JobTimeout
	if jobTimeout <= 0 {
		jobTimeout = DefaultJobTimeout
	}

	c := &Client{
		log:           log,
		version:       cfg.Version,
		providers:     cfg.Providers,
		executor:      executor,
		jobTimeout:    jobTimeout,
		onStateChange: cfg.OnStateChange,
		sm:            NewStateMachine(nil, log),
		policies:      NewPolicyManager(log),
	}
	c.jobs = NewJobManager(jobTimeout, c.jobTimedOut, log)
	c.conn = NewConnectionManager(transport, cfg.ReconnectDelay, log)
	c.conn.OnReconnect(func() { c.dispatch(EventReconnectRequested) })

	return c, nil
}

// Start begins the connection lifecycle.
func (c *Client) Start() {
	c.dispatch(EventStart)
}

// Stop terminates the client. A stopped client cannot be restarted.
func (c *Client) Stop() {
	c.dispatch(EventStop)
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sm.Current()
}

// IsRegistered reports whether the sink announced itself on the current
// connection.
func (c *Client) IsRegistered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sm.IsRegistered()
}

// PolicySnapshot returns a copy of the relay policies in effect.
func (c *Client) PolicySnapshot() Policies {
	return c.policies.Snapshot()
}

// JobCounts returns the outstanding and completed job counts.
func (c *Client) JobCounts() (outstanding, completed int) {
	return c.jobs.Counts()
}

// HandleMessage consumes one raw frame from the transport. Unreadable and
// unknown frames are logged and dropped; the client never fails on peer
// input.
func (c *Client) HandleMessage(raw []byte) {
	frame, err := models.ParseFrame(raw)
	if err != nil {
		c.log.Warn().Err(err).Msg("dropping unreadable frame")
		return
	}

	switch f := frame.(type) {
	case *models.PolicyFrame:
		c.policies.Apply(f)
	case *models.PingFrame:
		c.sendFrame(models.NewPongFrame())
	case *models.InsertTextFrame:
		c.handleInsert(f)
	}
}

// CompleteJob acknowledges a successfully executed job. Outside the
// Registered state the ack is skipped: no live registered connection means
// no peer to hear it.
func (c *Client) CompleteJob(id string) {
	if !c.IsRegistered() {
		c.log.Warn().Str("job_id", id).Msg("ok ack skipped: not registered")
		return
	}
	if !c.jobs.CompleteJob(id) {
		return
	}

	c.sendFrame(models.NewAckFrame(id, models.AckOK, ""))
}

// FailJob acknowledges a failed job with the given message. The same
// first-writer-wins gate applies: a job the timeout already resolved is not
// acknowledged twice.
func (c *Client) FailJob(id, message string) {
	if !c.IsRegistered() {
		c.log.Warn().Str("job_id", id).Msg("failed ack skipped: not registered")
		return
	}
	if !c.jobs.CompleteJob(id) {
		return
	}

	c.sendFrame(models.NewAckFrame(id, models.AckFailed, message))
}

// dispatch queues event and drains the queue unless another goroutine is
// already draining; that goroutine will pick the event up. Transitions are
// applied under the lock, entry actions and observer callbacks run outside
// it, so a transport that fires its callbacks synchronously cannot
// deadlock the client.
func (c *Client) dispatch(event Event) {
	c.mu.Lock()
	c.queue = append(c.queue, event)
	if c.draining {
		c.mu.Unlock()
		return
	}
	c.draining = true

	for len(c.queue) > 0 {
		next := c.queue[0]
		c.queue = c.queue[1:]

		change, ok := c.sm.Transition(next)
		c.mu.Unlock()

		if ok {
			c.apply(change)
			if c.onStateChange != nil {
				c.onStateChange(change)
			}
		}

		c.mu.Lock()
	}

	c.draining = false
	c.mu.Unlock()
}

// enqueue appends a follow-up event for the running drain loop.
func (c *Client) enqueue(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queue = append(c.queue, event)
}

// apply runs the entry action of the state just entered.
func (c *Client) apply(change Change) {
	switch change.To {
	case StateConnecting:
		c.conn.Connect(c.transportHandlers())
	case StateConnected:
		// Registration is fire-and-forget: the relay sends no reply
		// frame for it, so the client promotes itself immediately.
		c.policies.Reset()
		c.sendFrame(models.NewRegisterFrame(c.version, c.providers))
		c.enqueue(EventRegistered)
	case StateReconnecting:
		c.conn.ScheduleReconnect()
	case StateStopped:
		c.conn.Disconnect()
		c.jobs.ClearAll()
	}
}

func (c *Client) transportHandlers() TransportHandlers {
	return TransportHandlers{
		OnOpen: func() {
			c.dispatch(EventConnectionOpened)
		},
		OnMessage: c.HandleMessage,
		OnError: func(err error) {
			c.log.Error().Err(err).Msg("relay connection error")
			c.dispatch(EventConnectionError)
		},
		OnClose: func() {
			// Outstanding timers could only produce acks nobody would
			// receive; the completed set stays for deduplication.
			c.jobs.ClearOutstanding()
			c.dispatch(EventConnectionClosed)
		},
	}
}

// handleInsert validates and starts one job, then executes it off the
// dispatch goroutine. Duplicate and re-delivered ids are dropped by the
// JobManager gate.
func (c *Client) handleInsert(frame *models.InsertTextFrame) {
	if err := frame.Validate(); err != nil {
		c.log.Warn().Err(err).Str("job_id", frame.ID).Msg("dropping invalid insert_text frame")
		return
	}
	if !c.jobs.StartJob(frame.ID) {
		return
	}

	// max_job_bytes is advisory: the relay should not have sent an
	// oversized job, but the sink still runs it.
	if limit, ok := c.policies.MaxJobBytes(); ok {
		if size := int64(len(frame.Payload.Text)); size > limit {
			c.log.Warn().
				Str("job_id", frame.ID).
				Int64("size", size).
				Int64("max_job_bytes", limit).
				Msg("job exceeds advertised size limit")
		}
	}

	go c.runJob(*frame)
}

func (c *Client) runJob(job models.InsertTextFrame) {
	ctx, cancel := context.WithTimeout(context.Background(), c.jobTimeout)
	defer cancel()

	if err := c.executor.Execute(ctx, job); err != nil {
		c.log.Error().Err(err).Str("job_id", job.ID).Msg("job execution failed")
		c.FailJob(job.ID, err.Error())
		return
	}

	c.CompleteJob(job.ID)
}

// jobTimedOut is the JobManager timeout callback. The manager has already
// moved the id into the completed set, so the failed ack goes out directly
// instead of through FailJob's completion gate.
func (c *Client) jobTimedOut(id string) {
	if !c.IsRegistered() {
		c.log.Warn().Str("job_id", id).Msg("timeout ack skipped: not registered")
		return
	}

	c.sendFrame(models.NewAckFrame(id, models.AckFailed, "job timed out"))
}

func (c *Client) sendFrame(frame any) {
	data, err := json.Marshal(frame)
	if err != nil {
		c.log.Error().Err(err).Msg("marshal outgoing frame")
		return
	}

	c.conn.Send(data)
}
