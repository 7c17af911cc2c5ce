package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/phalabot/internal/common/clock"
	"github.com/KirkDiggler/phalabot/internal/models"
)

type waiter struct {
	match Predicate
	ch    chan *models.Message
}

// Waiters is the registry of goroutines suspended on AwaitNextMessage.
// The MessageCreate handler feeds every inbound message through Deliver.
type Waiters struct {
	mu      sync.Mutex
	clock   clock.Clock
	pending []*waiter
}

// NewWaiters creates an empty registry. A nil clock uses the system clock.
func NewWaiters(clk clock.Clock) *Waiters {
	if clk == nil {
		clk = clock.New()
	}
	return &Waiters{clock: clk}
}

// Await suspends the caller until a matching message is delivered, the timeout
// elapses or ctx is cancelled
func (w *Waiters) Await(ctx context.Context, match Predicate, timeout time.Duration) (*models.Message, error) {
	if match == nil {
		return nil, ErrNilPredicate
	}
	if timeout <= 0 {
		return nil, ErrInvalidTimeout
	}

	wt := &waiter{
		match: match,
		ch:    make(chan *models.Message, 1),
	}
	w.add(wt)
	defer w.remove(wt)

	select {
	case msg := <-wt.ch:
		return msg, nil
	case <-w.clock.After(timeout):
		return nil, ErrWaitTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Deliver hands msg to every pending waiter whose predicate matches it.
// Each waiter receives at most one message. Returns the number of waiters woken.
func (w *Waiters) Deliver(msg *models.Message) int {
	if msg == nil {
		return 0
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	woken := 0
	remaining := w.pending[:0]
	for _, wt := range w.pending {
		if wt.match(msg) {
			wt.ch <- msg
			woken++
			continue
		}
		remaining = append(remaining, wt)
	}
	// clear the tail so delivered waiters can be collected
	for i := len(remaining); i < len(w.pending); i++ {
		w.pending[i] = nil
	}
	w.pending = remaining

	return woken
}

// Pending returns the number of suspended waiters
func (w *Waiters) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *Waiters) add(wt *waiter) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, wt)
}

func (w *Waiters) remove(wt *waiter) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, p := range w.pending {
		if p == wt {
			w.pending = append(w.pending[:i], w.pending[i+1:]...)
			return
		}
	}
}
