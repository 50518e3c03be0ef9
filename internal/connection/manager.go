package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"keepapush/internal/codec"
	"keepapush/internal/product"
)

// Manager owns the single push-service connection and correlates product
// requests with the asynchronous responses arriving on it.
type Manager interface {
	// Connect establishes the connection and starts exactly one background
	// run loop. Idempotent if already running.
	Connect(ctx context.Context) error

	// Close signals shutdown, cancels all in-flight requests, and joins the
	// run loop with a bounded wait. Cleanup failures are logged, never
	// returned.
	Close() error

	// GetHistoricalPrices requests the price history for asin and blocks
	// until the matching response arrives, the timeout elapses, the context
	// is cancelled, or the connection is lost. A timeout of 0 uses the
	// configured default.
	GetHistoricalPrices(ctx context.Context, asin string, timeout time.Duration) (product.Snapshot, error)

	// Stats returns current connection statistics.
	Stats() Stats
}

// manager implements the Manager interface.
type manager struct {
	cfg    ManagerConfig
	logger *slog.Logger

	table *correlationTable

	// mu guards client, state, and the lifecycle flags. The transport
	// handle is owned here exclusively; nothing else sends or closes it.
	mu      sync.Mutex
	client  Client
	state   State
	running bool
	closed  bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewManager creates a new connection Manager.
func NewManager(cfg ManagerConfig, logger *slog.Logger) Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &manager{
		cfg:    cfg,
		logger: logger,
		table:  newCorrelationTable(),
		state:  StateDisconnected,
		done:   make(chan struct{}),
	}
}

// Connect establishes the connection and starts the run loop.
func (m *manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrAlreadyClosed
	}
	if m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = true
	m.state = StateConnecting
	m.mu.Unlock()

	cl := m.newSession()
	if err := cl.Connect(ctx); err != nil {
		m.mu.Lock()
		m.running = false
		m.state = StateDisconnected
		m.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrConnectFailed, err)
	}

	m.mu.Lock()
	m.client = cl
	m.state = StateConnected
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run(cl)

	m.logger.Info("connected to push service", "url", m.cfg.URL)
	return nil
}

// newSession builds a client for one connection attempt. The session id
// only scopes log output; the service identifies sessions by the token the
// client generates during the handshake.
func (m *manager) newSession() Client {
	cfg := ClientConfig{
		URL:              m.cfg.URL,
		UserAgent:        m.cfg.UserAgent,
		HandshakeTimeout: m.cfg.HandshakeTimeout,
		WriteTimeout:     m.cfg.WriteTimeout,
		BufferSize:       m.cfg.BufferSize,
	}
	return NewClient(cfg, m.logger.With("session", uuid.NewString()))
}

// Close shuts the manager down. Always completes.
func (m *manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.state = StateClosing
	cl := m.client
	m.client = nil
	m.mu.Unlock()

	close(m.done)

	if n := m.table.cancelAll(fmt.Errorf("%w: shutting down", ErrAlreadyClosed)); n > 0 {
		m.logger.Info("cancelled in-flight requests", "count", n)
	}

	if cl != nil {
		if err := cl.Close(); err != nil {
			m.logger.Error("error closing websocket", "error", err)
		}
	}

	// Join the run loop with a bounded wait
	joinTimeout := m.cfg.CloseTimeout
	if joinTimeout <= 0 {
		joinTimeout = 5 * time.Second
	}
	joined := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(joined)
	}()
	select {
	case <-joined:
	case <-time.After(joinTimeout):
		m.logger.Warn("run loop did not terminate cleanly")
	}

	m.mu.Lock()
	m.state = StateDisconnected
	m.mu.Unlock()

	m.logger.Info("client shutdown complete")
	return nil
}

// Stats returns current statistics.
func (m *manager) Stats() Stats {
	m.mu.Lock()
	state := m.state
	m.mu.Unlock()

	return Stats{
		State:           state,
		PendingRequests: m.table.size(),
	}
}

// GetHistoricalPrices builds, sends, and awaits one product request.
func (m *manager) GetHistoricalPrices(ctx context.Context, asin string, timeout time.Duration) (product.Snapshot, error) {
	if asin == "" {
		return nil, errors.New("asin must not be empty")
	}
	if timeout < 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", timeout)
	}
	if timeout == 0 {
		timeout = m.cfg.RequestTimeout
		if timeout == 0 {
			timeout = DefaultManagerConfig().RequestTimeout
		}
	}

	m.mu.Lock()
	cl := m.client
	connected := m.state == StateConnected
	m.mu.Unlock()
	if !connected || cl == nil {
		return nil, fmt.Errorf("%w: request for %s", ErrNotConnected, asin)
	}

	payload, err := json.Marshal(newProductRequest(asin))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	frame, err := codec.Compress(string(payload))
	if err != nil {
		return nil, fmt.Errorf("compress request: %w", err)
	}

	req, err := m.table.register(asin)
	if err != nil {
		return nil, err
	}

	if err := cl.Send(frame); err != nil {
		m.table.unregister(asin)
		return nil, fmt.Errorf("%w: send request for %s: %v", ErrConnectFailed, asin, err)
	}
	m.logger.Debug("sent product request", "asin", asin)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-req.done:
	case <-ctx.Done():
		if m.table.unregister(asin) {
			return nil, ctx.Err()
		}
		// The response won the race; take it instead.
		<-req.done
	case <-timer.C:
		if m.table.unregister(asin) {
			return nil, fmt.Errorf("%w: no response for %s within %s", ErrTimeout, asin, timeout)
		}
		<-req.done
	}

	if req.err != nil {
		return nil, req.err
	}
	if len(req.snapshot) == 0 {
		return nil, fmt.Errorf("%w: empty product data for %s", ErrProtocol, asin)
	}

	m.logger.Debug("request resolved",
		"asin", asin,
		"elapsed", time.Since(req.registered),
	)
	return req.snapshot, nil
}

// run drives one connection at a time: it consumes inbound frames until the
// connection drops, then hands off to the reconnect loop. Exactly one run
// goroutine exists for the lifetime of the manager.
func (m *manager) run(cl Client) {
	defer m.wg.Done()

	for {
		select {
		case <-m.done:
			return

		case err := <-cl.Errors():
			m.logger.Warn("connection lost", "error", err)
			next, ok := m.reconnect(cl)
			if !ok {
				return
			}
			cl = next

		case data, ok := <-cl.Messages():
			if !ok {
				next, ok := m.reconnect(cl)
				if !ok {
					return
				}
				cl = next
				continue
			}
			m.handleFrame(data)
		}
	}
}

// reconnect tears down the stale client and dials until a new connection is
// established or shutdown is requested. Connection loss never reaches
// callers of in-flight requests except through their error slot.
func (m *manager) reconnect(stale Client) (Client, bool) {
	if n := m.table.cancelAll(fmt.Errorf("%w: reconnecting", ErrConnectionReset)); n > 0 {
		m.logger.Warn("cancelled in-flight requests", "count", n)
	}

	m.mu.Lock()
	m.state = StateDisconnected
	m.client = nil
	m.mu.Unlock()

	if err := stale.Close(); err != nil {
		m.logger.Error("error closing stale connection", "error", err)
	}

	for {
		select {
		case <-m.done:
			return nil, false
		case <-time.After(m.cfg.ReconnectInterval):
		}

		m.logger.Info("attempting reconnection")

		m.mu.Lock()
		m.state = StateConnecting
		m.mu.Unlock()

		cl := m.newSession()
		if err := cl.Connect(context.Background()); err != nil {
			m.logger.Warn("reconnection failed", "error", err)
			m.mu.Lock()
			m.state = StateDisconnected
			m.mu.Unlock()
			continue
		}

		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			cl.Close()
			return nil, false
		}
		m.client = cl
		m.state = StateConnected
		m.mu.Unlock()

		m.logger.Info("reconnected")
		return cl, true
	}
}

// handleFrame decompresses and decodes one inbound frame, resolving the
// matching pending request if any. Decode failures never crash the run
// loop: a per-product failure is routed to that ASIN's waiter, anything
// else is logged and dropped.
func (m *manager) handleFrame(data []byte) {
	text, err := codec.Decompress(data)
	if err != nil {
		m.logger.Warn("dropping undecodable frame", "error", err, "bytes", len(data))
		return
	}

	var msg productMessage
	if err := json.Unmarshal([]byte(text), &msg); err != nil {
		m.logger.Warn("dropping malformed frame", "error", err)
		return
	}

	if len(msg.Products) == 0 {
		// Control or keepalive traffic; not validated further.
		m.logger.Debug("frame without products")
		return
	}

	p := msg.Products[0]

	var entries [][]int64
	if len(p.CSV) > 0 {
		if err := json.Unmarshal(p.CSV, &entries); err != nil {
			m.logger.Error("error decoding csv data", "asin", p.ASIN, "error", err)
			m.table.resolve(p.ASIN, nil, fmt.Errorf("%w: decode csv for %s: %v", ErrProtocol, p.ASIN, err))
			return
		}
	}

	snap, err := product.DecodeSnapshot(entries)
	if err != nil {
		m.logger.Error("error decoding csv data", "asin", p.ASIN, "error", err)
		m.table.resolve(p.ASIN, nil, fmt.Errorf("%w: decode csv for %s: %v", ErrProtocol, p.ASIN, err))
		return
	}

	if m.table.resolve(p.ASIN, snap, nil) {
		m.logger.Info("received product data", "asin", p.ASIN)
	} else {
		m.logger.Debug("response for unknown asin", "asin", p.ASIN)
	}
}
