package event

import (
	"context"
	"errors"
	"sync"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
)

var ErrBusClosed = errors.New("event bus is closed")

// Bus is a buffered in-process channel of ledger events. Publish blocks when
// the buffer is full until ctx is done.
type Bus struct {
	mu     sync.RWMutex
	closed bool
	ch     chan entity.LedgerEvent
}

func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}

	return &Bus{
		ch: make(chan entity.LedgerEvent, buffer),
	}
}

func (b *Bus) Publish(ctx context.Context, event entity.LedgerEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	select {
	case b.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bus) Subscribe() <-chan entity.LedgerEvent {
	return b.ch
}

// Close stops accepting events. Events already buffered are still delivered
// to subscribers. Safe to call more than once.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.ch)
}
