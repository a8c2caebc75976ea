package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-snip-sink/internal/logger"
	"github.com/MKhiriev/go-snip-sink/models"
)

// Helpers on the shared fakeTransport so tests can drive the connection
// callbacks the way a live transport would.

func (f *fakeTransport) fireOpen() {
	f.mu.Lock()
	f.open = true
	h := f.handlers
	f.mu.Unlock()
	h.OnOpen()
}

func (f *fakeTransport) fireMessage(raw []byte) {
	f.mu.Lock()
	h := f.handlers
	f.mu.Unlock()
	h.OnMessage(raw)
}

func (f *fakeTransport) fireError(err error) {
	f.mu.Lock()
	h := f.handlers
	f.mu.Unlock()
	h.OnError(err)
}

func (f *fakeTransport) fireClose() {
	f.mu.Lock()
	f.open = false
	h := f.handlers
	f.mu.Unlock()
	h.OnClose()
}

func (f *fakeTransport) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeTransport) sentFrame(t *testing.T, i int) map[string]any {
	t.Helper()

	f.mu.Lock()
	require.Greater(t, len(f.sent), i, "frame %d was never sent", i)
	raw := f.sent[i]
	f.mu.Unlock()

	var frame map[string]any
	require.NoError(t, json.Unmarshal(raw, &frame))
	return frame
}

// fakeExecutor records executed jobs and resolves them with a fixed error.
// A non-nil gate channel keeps Execute blocked until the channel closes.
type fakeExecutor struct {
	mu   sync.Mutex
	jobs []models.InsertTextFrame
	err  error
	gate chan struct{}
}

func (f *fakeExecutor) Execute(_ context.Context, job models.InsertTextFrame) error {
	f.mu.Lock()
	f.jobs = append(f.jobs, job)
	err := f.err
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return err
}

func (f *fakeExecutor) executed() []models.InsertTextFrame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.InsertTextFrame(nil), f.jobs...)
}

type changeRecorder struct {
	mu      sync.Mutex
	changes []Change
}

func (r *changeRecorder) record(change Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, change)
}

func (r *changeRecorder) all() []Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Change(nil), r.changes...)
}

func insertFrameJSON(id, text string) []byte {
	return []byte(fmt.Sprintf(
		`{"type":"insert_text","schema_version":1,"id":%q,"payload":{"text":%q,"placement":{"type":"bottom"},"source":{"client":"web","label":"chat"},"target":null}}`,
		id, text,
	))
}

func newRegisteredClient(t *testing.T, tr *fakeTransport, exec Executor, cfg Config) *Client {
	t.Helper()

	client, err := NewClient(tr, exec, cfg, logger.Nop())
	require.NoError(t, err)

	client.Start()
	tr.fireOpen()
	require.Equal(t, StateRegistered, client.State())

	return client
}

// ── конструктор ──────────────────────────────────────────────────────────

func TestNewClient_RequiresTransportAndExecutor(t *testing.T) {
	_, err := NewClient(nil, &fakeExecutor{}, Config{}, logger.Nop())
	assert.ErrorIs(t, err, ErrNoTransport)

	_, err = NewClient(&fakeTransport{}, nil, Config{}, logger.Nop())
	assert.ErrorIs(t, err, ErrNoExecutor)
}

// ── жизненный цикл ───────────────────────────────────────────────────────

func TestClient_StartConnectsAndRegisters(t *testing.T) {
	tr := &fakeTransport{sendOK: true}
	recorder := &changeRecorder{}
	client, err := NewClient(tr, &fakeExecutor{}, Config{
		Version:       "1.2.3",
		Providers:     []string{"clipboard", "webhook"},
		OnStateChange: recorder.record,
	}, logger.Nop())
	require.NoError(t, err)

	client.Start()
	assert.Equal(t, StateConnecting, client.State())
	assert.Equal(t, 1, tr.connectCount())

	// Повторный Start в состоянии Connecting игнорируется.
	client.Start()
	assert.Equal(t, 1, tr.connectCount())

	tr.fireOpen()
	assert.Equal(t, StateRegistered, client.State())

	register := tr.sentFrame(t, 0)
	assert.Equal(t, "register", register["type"])
	assert.Equal(t, float64(models.SchemaVersion), register["schema_version"])
	assert.Equal(t, "1.2.3", register["version"])
	assert.Equal(t, []any{"insert"}, register["capabilities"])
	assert.Equal(t, []any{"clipboard", "webhook"}, register["providers"])

	assert.Equal(t, []Change{
		{From: StateDisconnected, To: StateConnecting, Event: EventStart},
		{From: StateConnecting, To: StateConnected, Event: EventConnectionOpened},
		{From: StateConnected, To: StateRegistered, Event: EventRegistered},
	}, recorder.all())
}

func TestClient_StopIsTerminal(t *testing.T) {
	tr := &fakeTransport{sendOK: true}
	client := newRegisteredClient(t, tr, &fakeExecutor{}, Config{Version: "1.0.0"})

	client.CompleteJob("warmup")
	_, completed := client.JobCounts()
	require.Equal(t, 1, completed)

	client.Stop()
	assert.Equal(t, StateStopped, client.State())
	assert.Equal(t, 1, tr.closeCount())

	outstanding, completed := client.JobCounts()
	assert.Zero(t, outstanding)
	assert.Zero(t, completed)

	client.Start()
	assert.Equal(t, StateStopped, client.State(), "stopped client must not restart")
	assert.Equal(t, 1, tr.connectCount())
}

// ── обработка кадров ─────────────────────────────────────────────────────

func TestClient_PingRepliesWithPong(t *testing.T) {
	tr := &fakeTransport{sendOK: true}
	newRegisteredClient(t, tr, &fakeExecutor{}, Config{Version: "1.0.0"})

	tr.fireMessage([]byte(`{"type":"ping","schema_version":1}`))

	require.Equal(t, 2, tr.sentCount())
	pong := tr.sentFrame(t, 1)
	assert.Equal(t, "pong", pong["type"])
	assert.Equal(t, float64(models.SchemaVersion), pong["schema_version"])
}

func TestClient_PolicyFrameApplied(t *testing.T) {
	tr := &fakeTransport{sendOK: true}
	client := newRegisteredClient(t, tr, &fakeExecutor{}, Config{Version: "1.0.0"})

	tr.fireMessage([]byte(`{"type":"policy","schema_version":1,"supersede_on_register":true,"max_job_bytes":2048}`))

	policies := client.PolicySnapshot()
	assert.True(t, policies.SupersedeOnRegister)
	require.NotNil(t, policies.MaxJobBytes)
	assert.Equal(t, int64(2048), *policies.MaxJobBytes)
}

func TestClient_MalformedAndUnknownFramesDropped(t *testing.T) {
	tr := &fakeTransport{sendOK: true}
	client := newRegisteredClient(t, tr, &fakeExecutor{}, Config{Version: "1.0.0"})

	assert.NotPanics(t, func() {
		tr.fireMessage([]byte(`{not json`))
		tr.fireMessage([]byte(`{"type":"teleport","schema_version":1}`))
	})

	assert.Equal(t, StateRegistered, client.State())
	assert.Equal(t, 1, tr.sentCount(), "only the register frame went out")
}

// ── джобы ────────────────────────────────────────────────────────────────

func TestClient_InsertJobAckedOK(t *testing.T) {
	tr := &fakeTransport{sendOK: true}
	exec := &fakeExecutor{}
	client := newRegisteredClient(t, tr, exec, Config{Version: "1.0.0"})

	tr.fireMessage(insertFrameJSON("job-1", "hello"))
	time.Sleep(50 * time.Millisecond)

	executed := exec.executed()
	require.Len(t, executed, 1)
	assert.Equal(t, "job-1", executed[0].ID)
	assert.Equal(t, "hello", executed[0].Payload.Text)

	require.Equal(t, 2, tr.sentCount())
	ack := tr.sentFrame(t, 1)
	assert.Equal(t, "ack", ack["type"])
	assert.Equal(t, "job-1", ack["id"])
	assert.Equal(t, "ok", ack["status"])
	assert.Nil(t, ack["error"])

	outstanding, completed := client.JobCounts()
	assert.Zero(t, outstanding)
	assert.Equal(t, 1, completed)
}

func TestClient_InsertJobAckedFailed(t *testing.T) {
	tr := &fakeTransport{sendOK: true}
	exec := &fakeExecutor{err: errors.New("paste rejected")}
	newRegisteredClient(t, tr, exec, Config{Version: "1.0.0"})

	tr.fireMessage(insertFrameJSON("job-1", "hello"))
	time.Sleep(50 * time.Millisecond)

	require.Equal(t, 2, tr.sentCount())
	ack := tr.sentFrame(t, 1)
	assert.Equal(t, "failed", ack["status"])
	assert.Equal(t, "paste rejected", ack["error"])
}

func TestClient_DuplicateJobDropped(t *testing.T) {
	tr := &fakeTransport{sendOK: true}
	exec := &fakeExecutor{}
	newRegisteredClient(t, tr, exec, Config{Version: "1.0.0"})

	tr.fireMessage(insertFrameJSON("job-1", "hello"))
	time.Sleep(50 * time.Millisecond)
	tr.fireMessage(insertFrameJSON("job-1", "hello again"))
	time.Sleep(50 * time.Millisecond)

	assert.Len(t, exec.executed(), 1, "re-delivered id must not execute twice")
	assert.Equal(t, 2, tr.sentCount(), "register plus exactly one ack")
}

func TestClient_InvalidInsertFrameDropped(t *testing.T) {
	tr := &fakeTransport{sendOK: true}
	exec := &fakeExecutor{}
	client := newRegisteredClient(t, tr, exec, Config{Version: "1.0.0"})

	tr.fireMessage([]byte(`{"type":"insert_text","schema_version":1,"id":"","payload":{"text":"x","placement":null,"source":{"client":"web","label":""},"target":null}}`))
	time.Sleep(30 * time.Millisecond)

	assert.Empty(t, exec.executed())
	assert.Equal(t, 1, tr.sentCount(), "no ack for an unidentifiable job")

	outstanding, completed := client.JobCounts()
	assert.Zero(t, outstanding)
	assert.Zero(t, completed)
}

func TestClient_JobTimeoutSendsFailedAck(t *testing.T) {
	tr := &fakeTransport{sendOK: true}
	exec := &fakeExecutor{gate: make(chan struct{})}
	t.Cleanup(func() { close(exec.gate) })

	// Таймаут 20ms — за 80ms джоба гарантированно истечёт.
	client := newRegisteredClient(t, tr, exec, Config{Version: "1.0.0", JobTimeout: 20 * time.Millisecond})

	tr.fireMessage(insertFrameJSON("job-1", "hello"))
	time.Sleep(80 * time.Millisecond)

	require.Equal(t, 2, tr.sentCount())
	ack := tr.sentFrame(t, 1)
	assert.Equal(t, "failed", ack["status"])
	assert.Equal(t, "job timed out", ack["error"])

	outstanding, completed := client.JobCounts()
	assert.Zero(t, outstanding)
	assert.Equal(t, 1, completed)
}

func TestClient_AckSkippedWhenNotRegistered(t *testing.T) {
	tr := &fakeTransport{sendOK: true}
	client, err := NewClient(tr, &fakeExecutor{}, Config{Version: "1.0.0"}, logger.Nop())
	require.NoError(t, err)

	client.CompleteJob("job-1")
	client.FailJob("job-2", "boom")

	assert.Zero(t, tr.sentCount())
	outstanding, completed := client.JobCounts()
	assert.Zero(t, outstanding)
	assert.Zero(t, completed, "skipped acks must not consume the ids")
}

// ── переподключение ──────────────────────────────────────────────────────

func TestClient_ConnectionLossReconnectsAndReregisters(t *testing.T) {
	tr := &fakeTransport{sendOK: true}
	exec := &fakeExecutor{gate: make(chan struct{})}
	t.Cleanup(func() { close(exec.gate) })

	client := newRegisteredClient(t, tr, exec, Config{
		Version:        "1.0.0",
		JobTimeout:     time.Minute,
		ReconnectDelay: 20 * time.Millisecond,
	})

	tr.fireMessage(insertFrameJSON("job-1", "hello"))
	outstanding, _ := client.JobCounts()
	require.Equal(t, 1, outstanding)

	tr.fireClose()
	assert.Equal(t, StateReconnecting, client.State())

	outstanding, completed := client.JobCounts()
	assert.Zero(t, outstanding, "lost connection clears outstanding jobs")
	assert.Zero(t, completed)

	// Таймер переподключения 20ms: ждём редиал и открываем заново.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 2, tr.connectCount())

	tr.fireOpen()
	assert.Equal(t, StateRegistered, client.State())
	assert.Equal(t, 2, tr.sentCount(), "a fresh register goes out on the new connection")
}

func TestClient_PolicyResetOnNewConnection(t *testing.T) {
	tr := &fakeTransport{sendOK: true}
	client := newRegisteredClient(t, tr, &fakeExecutor{}, Config{
		Version:        "1.0.0",
		ReconnectDelay: 20 * time.Millisecond,
	})

	tr.fireMessage([]byte(`{"type":"policy","schema_version":1,"max_job_bytes":512}`))
	require.NotNil(t, client.PolicySnapshot().MaxJobBytes)

	tr.fireClose()
	time.Sleep(60 * time.Millisecond)
	tr.fireOpen()

	require.Equal(t, StateRegistered, client.State())
	assert.Nil(t, client.PolicySnapshot().MaxJobBytes, "policies reset on every fresh connection")
}

func TestClient_ErrorThenCloseArmsOneReconnect(t *testing.T) {
	tr := &fakeTransport{sendOK: true}
	recorder := &changeRecorder{}
	client, err := NewClient(tr, &fakeExecutor{}, Config{
		Version:        "1.0.0",
		ReconnectDelay: 20 * time.Millisecond,
		OnStateChange:  recorder.record,
	}, logger.Nop())
	require.NoError(t, err)

	client.Start()
	tr.fireOpen()
	require.Equal(t, StateRegistered, client.State())

	// Транспорт сообщает об ошибке и сразу о закрытии: второй сигнал
	// не должен породить второй таймер.
	tr.fireError(errors.New("read: connection reset"))
	tr.fireClose()
	assert.Equal(t, StateReconnecting, client.State())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 2, tr.connectCount(), "exactly one redial after error+close")

	reconnecting := 0
	for _, change := range recorder.all() {
		if change.To == StateReconnecting {
			reconnecting++
		}
	}
	assert.Equal(t, 1, reconnecting)
}
