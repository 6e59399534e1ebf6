package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
)

const defaultAuditCapacity = 256

var errMissingEventID = errors.New("missing event id")

// AuditLog is the default Handler: it logs every event and keeps the most
// recent ones in memory for inspection.
type AuditLog struct {
	mu       sync.RWMutex
	capacity int
	events   []entity.LedgerEvent
}

func NewAuditLog(capacity int) *AuditLog {
	if capacity < 1 {
		capacity = defaultAuditCapacity
	}

	return &AuditLog{capacity: capacity}
}

func (a *AuditLog) Handle(ctx context.Context, event entity.LedgerEvent) error {
	if event.EventID == "" {
		return errMissingEventID
	}

	attrs := []any{"event_id", event.EventID, "kind", event.Kind, "agent_id", event.AgentID, "step", event.Step}
	switch event.Kind {
	case entity.EventTransactionPurged:
		if event.Tx != nil {
			attrs = append(attrs, "tx_handle", event.Tx.Handle, "tx_type", event.Tx.Type, "amount", event.Tx.Amount.String())
		}
		attrs = append(attrs, "reason", event.Reason)
		slog.InfoContext(ctx, "audit: transaction purged", attrs...)
	case entity.EventLedgerInconsistent:
		attrs = append(attrs, "assets", event.Assets.StringFixed(2), "liabilities", event.Liabilities.StringFixed(2))
		slog.WarnContext(ctx, "audit: ledger inconsistent", attrs...)
	default:
		slog.InfoContext(ctx, "audit: ledger event", attrs...)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.events = append(a.events, event)
	if over := len(a.events) - a.capacity; over > 0 {
		a.events = append(a.events[:0:0], a.events[over:]...)
	}

	return nil
}

// Recent returns up to limit of the latest events, oldest first. A
// non-positive limit returns everything retained.
func (a *AuditLog) Recent(limit int) []entity.LedgerEvent {
	a.mu.RLock()
	defer a.mu.RUnlock()

	start := 0
	if limit > 0 && limit < len(a.events) {
		start = len(a.events) - limit
	}

	out := make([]entity.LedgerEvent, len(a.events)-start)
	copy(out, a.events[start:])
	return out
}
