package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
)

type Handler interface {
	Handle(ctx context.Context, event entity.LedgerEvent) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
	// Remember caps how many event IDs are kept for deduplication.
	Remember int
}

// DefaultRemember matches the default AuditLog capacity.
const DefaultRemember = 256

// AuditConsumer drains the bus with a fixed pool of workers. Each event is
// handled at most once per EventID and retried with exponential backoff.
type AuditConsumer struct {
	bus         *Bus
	handler     Handler
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        *recentIDs
	wg          sync.WaitGroup
}

func NewAuditConsumer(bus *Bus, handler Handler, cfg ConsumerConfig) *AuditConsumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 2
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	return &AuditConsumer{
		bus:         bus,
		handler:     handler,
		workers:     workers,
		maxRetries:  max(cfg.MaxRetries, 0),
		baseBackoff: baseBackoff,
		seen:        newRecentIDs(cfg.Remember),
	}
}

func (c *AuditConsumer) Start() {
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker()
	}
}

// Stop closes the bus and waits for the workers to drain it.
func (c *AuditConsumer) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *AuditConsumer) worker() {
	defer c.wg.Done()

	for event := range c.bus.Subscribe() {
		c.process(event)
	}
}

func (c *AuditConsumer) process(event entity.LedgerEvent) {
	if c.handler == nil {
		return
	}

	if event.EventID != "" {
		if !c.seen.add(event.EventID) {
			slog.Info("skip duplicate ledger event", "event_id", event.EventID, "kind", event.Kind)
			return
		}
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.handler.Handle(context.Background(), event)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.Error("failed to audit ledger event after retries", "event_id", event.EventID, "kind", event.Kind, "agent_id", event.AgentID, "error", err)
			return
		}

		time.Sleep(backoff)
		backoff *= 2
	}
}

// recentIDs is a FIFO-bounded set; the oldest ID is forgotten once it is full.
type recentIDs struct {
	mu    sync.Mutex
	ids   map[string]struct{}
	order []string
	next  int
}

func newRecentIDs(capacity int) *recentIDs {
	if capacity < 1 {
		capacity = DefaultRemember
	}

	return &recentIDs{
		ids:   make(map[string]struct{}, capacity),
		order: make([]string, 0, capacity),
	}
}

// add records id and reports whether it was new.
func (r *recentIDs) add(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[id]; ok {
		return false
	}

	if len(r.order) < cap(r.order) {
		r.order = append(r.order, id)
	} else {
		delete(r.ids, r.order[r.next])
		r.order[r.next] = id
		r.next = (r.next + 1) % len(r.order)
	}
	r.ids[id] = struct{}{}

	return true
}

func (r *recentIDs) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}
