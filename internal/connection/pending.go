package connection

import (
	"fmt"
	"sync"
	"time"

	"keepapush/internal/product"
)

// pendingRequest tracks one in-flight product request. The result fields are
// written exactly once, under the table lock, before done is closed; a
// waiter may read them after done is closed or after observing the entry
// gone from the table.
type pendingRequest struct {
	asin       string
	done       chan struct{}
	snapshot   product.Snapshot
	err        error
	registered time.Time
}

// correlationTable matches asynchronous inbound product frames to waiting
// callers by ASIN. At most one request per ASIN may be in flight. All map
// access holds mu for the duration of the map operation only; waiters block
// on each record's done channel outside the lock.
type correlationTable struct {
	mu      sync.Mutex
	pending map[string]*pendingRequest
}

func newCorrelationTable() *correlationTable {
	return &correlationTable{
		pending: make(map[string]*pendingRequest),
	}
}

// register inserts a fresh record for asin. A second registration while the
// first is outstanding is a caller error, not queued.
func (t *correlationTable) register(asin string) (*pendingRequest, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.pending[asin]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateRequest, asin)
	}

	req := &pendingRequest{
		asin:       asin,
		done:       make(chan struct{}),
		registered: time.Now(),
	}
	t.pending[asin] = req
	return req, nil
}

// resolve completes the pending request for asin with a snapshot or an
// error, removing it from the table in the same locked step so it can never
// resolve twice. Returns false if no request was waiting: a frame for an
// unknown or already-resolved ASIN is dropped.
func (t *correlationTable) resolve(asin string, snap product.Snapshot, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	req, ok := t.pending[asin]
	if !ok {
		return false
	}
	delete(t.pending, asin)

	req.snapshot = snap
	req.err = err
	close(req.done)
	return true
}

// unregister removes the record for asin without resolving it, used by the
// timeout path. Returns false if the record was already resolved or never
// registered; in that case its result fields are final and safe to read.
func (t *correlationTable) unregister(asin string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.pending[asin]; !ok {
		return false
	}
	delete(t.pending, asin)
	return true
}

// cancelAll resolves every pending request with the same error and leaves
// the table empty. Called only by the Manager during teardown or reconnect.
func (t *correlationTable) cancelAll(err error) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.pending)
	for asin, req := range t.pending {
		req.err = err
		close(req.done)
		delete(t.pending, asin)
	}
	return n
}

// size returns the number of requests currently in flight.
func (t *correlationTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}
