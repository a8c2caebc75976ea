// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package transport implements the relay connection over WebSocket.
package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-snip-sink/internal/logger"
	"github.com/MKhiriev/go-snip-sink/internal/sink"
)

const (
	// DefaultHandshakeTimeout bounds the WebSocket upgrade.
	DefaultHandshakeTimeout = 10 * time.Second

	// DefaultPongWait is how long the read side tolerates silence before
	// treating the connection as dead; every pong extends it.
	DefaultPongWait = 60 * time.Second

	// DefaultWriteTimeout is the deadline for a single outgoing message.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultMaxMessageBytes caps a single incoming frame.
	DefaultMaxMessageBytes = 1 << 20
)

// Config tunes the relay connection.
type Config struct {
	// URL is the relay endpoint; the scheme must be ws or wss.
	URL string

	// AuthToken, when set, is sent as a Bearer token on the handshake.
	AuthToken string

	HandshakeTimeout time.Duration

	// PingInterval controls the heartbeat; it must stay below PongWait
	// and defaults to 9/10 of it.
	PingInterval time.Duration

	PongWait        time.Duration
	WriteTimeout    time.Duration
	MaxMessageBytes int64
}

// session is one live connection. A new session is created per successful
// dial; its done channel stops the heartbeat when the read loop exits.
type session struct {
	conn *websocket.Conn
	done chan struct{}

	// writeMu serializes writes; the connection allows one writer at a
	// time and pings race with outgoing frames.
	writeMu sync.Mutex
}

// WSTransport is the WebSocket implementation of sink.Transport.
type WSTransport struct {
	cfg Config
	log *logger.Logger

	mu       sync.Mutex
	handlers sink.TransportHandlers
	attached bool
	dialing  bool
	sess     *session
}

// New validates cfg and returns a disconnected transport.
func New(cfg Config, log *logger.Logger) (*WSTransport, error) {
	parsed, err := url.Parse(cfg.URL)
	if err != nil || (parsed.Scheme != "ws" && parsed.Scheme != "wss") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRelayURL, cfg.URL)
	}

	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = DefaultPongWait
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = (cfg.PongWait * 9) / 10
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.MaxMessageBytes <= 0 {
		cfg.MaxMessageBytes = DefaultMaxMessageBytes
	}

	return &WSTransport{cfg: cfg, log: log}, nil
}

// Connect stores the handlers and dials the relay asynchronously. It is a
// no-op while a connection is open or a dial is in flight.
func (t *WSTransport) Connect(handlers sink.TransportHandlers) {
	t.mu.Lock()
	if t.sess != nil || t.dialing {
		t.mu.Unlock()
		t.log.Debug().Msg("connect ignored: relay connection already open or dialing")
		return
	}
	t.dialing = true
	t.attached = true
	t.handlers = handlers
	t.mu.Unlock()

	go t.dial()
}

// Send writes one message to the relay and reports success. Without an open
// connection it logs and returns false.
func (t *WSTransport) Send(data []byte) bool {
	t.mu.Lock()
	sess := t.sess
	t.mu.Unlock()

	if sess == nil {
		t.log.Warn().Msg("send skipped: no open relay connection")
		return false
	}

	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()

	sess.conn.SetWriteDeadline(time.Now().Add(t.cfg.WriteTimeout))
	if err := sess.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.log.Error().Err(err).Msg("relay write failed")
		return false
	}

	return true
}

// Close detaches the handlers before touching the connection, so an
// explicit disconnect never triggers the error or close callbacks, then
// performs the closing handshake.
func (t *WSTransport) Close() {
	t.mu.Lock()
	t.attached = false
	t.handlers = sink.TransportHandlers{}
	sess := t.sess
	t.sess = nil
	t.mu.Unlock()

	if sess == nil {
		return
	}

	sess.writeMu.Lock()
	sess.conn.SetWriteDeadline(time.Now().Add(t.cfg.WriteTimeout))
	_ = sess.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
	sess.writeMu.Unlock()

	sess.conn.Close()
}

// IsOpen reports whether a relay connection is currently established.
func (t *WSTransport) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.sess != nil
}

func (t *WSTransport) dial() {
	header := http.Header{}
	if t.cfg.AuthToken != "" {
		header.Set("Authorization", "Bearer "+t.cfg.AuthToken)
	}

	dialer := websocket.Dialer{HandshakeTimeout: t.cfg.HandshakeTimeout}
	conn, _, err := dialer.Dial(t.cfg.URL, header)

	t.mu.Lock()
	t.dialing = false
	if !t.attached {
		// Closed while the dial was in flight; discard the result.
		t.mu.Unlock()
		if err == nil {
			conn.Close()
		}
		return
	}
	if err != nil {
		onError := t.handlers.OnError
		t.mu.Unlock()

		t.log.Error().Err(err).Str("url", t.cfg.URL).Msg("relay dial failed")
		if onError != nil {
			onError(err)
		}
		return
	}

	sess := &session{conn: conn, done: make(chan struct{})}
	t.sess = sess
	onOpen := t.handlers.OnOpen
	t.mu.Unlock()

	t.log.Info().Str("url", t.cfg.URL).Msg("relay connection established")
	if onOpen != nil {
		onOpen()
	}

	go t.readLoop(sess)
	go t.pingLoop(sess)
}

// readLoop is the single reader: incoming frames are delivered strictly in
// arrival order. It exits on the first read error.
func (t *WSTransport) readLoop(sess *session) {
	defer close(sess.done)

	conn := sess.conn
	conn.SetReadLimit(t.cfg.MaxMessageBytes)
	conn.SetReadDeadline(time.Now().Add(t.cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(t.cfg.PongWait))
		return nil
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.finish(sess, err)
			return
		}

		t.mu.Lock()
		onMessage := t.handlers.OnMessage
		t.mu.Unlock()

		if onMessage != nil {
			onMessage(raw)
		}
	}
}

// pingLoop is the single heartbeat timer for one connection; it stops with
// the read loop.
func (t *WSTransport) pingLoop(sess *session) {
	ticker := time.NewTicker(t.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sess.done:
			return
		case <-ticker.C:
			sess.writeMu.Lock()
			sess.conn.SetWriteDeadline(time.Now().Add(t.cfg.WriteTimeout))
			err := sess.conn.WriteMessage(websocket.PingMessage, nil)
			sess.writeMu.Unlock()

			if err != nil {
				t.log.Error().Err(err).Msg("relay ping failed")
				return
			}
		}
	}
}

// finish tears the session down after a read error. When Close already
// detached the session nothing fires; otherwise an abnormal error is
// reported before the close callback.
func (t *WSTransport) finish(sess *session, err error) {
	t.mu.Lock()
	current := t.sess == sess
	if current {
		t.sess = nil
	}
	handlers := t.handlers
	t.mu.Unlock()

	sess.conn.Close()

	if !current {
		return
	}

	// Only a clean close frame counts as normal; EOFs, resets and read
	// timeouts all report an error first.
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		t.log.Info().Msg("relay connection closed")
	} else {
		t.log.Error().Err(err).Msg("relay connection lost")
		if handlers.OnError != nil {
			handlers.OnError(err)
		}
	}

	if handlers.OnClose != nil {
		handlers.OnClose()
	}
}
