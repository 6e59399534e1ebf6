package store

import (
	"context"
	"slices"
	"sync"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
	"github.com/jkpaulin/BlackRhino/internal/pkg/pkguid"
)

// Registry is the single owner of every transaction record. Agent books hold
// handles into it, so a removal or maturity update is seen by both parties at
// once. All methods are safe for concurrent use; readers share the lock and
// mutators take it exclusively.
type Registry struct {
	mu      sync.RWMutex
	ids     pkguid.NumberID
	agents  map[string]*agentRecord
	order   []string
	txs     map[entity.Handle]*entity.Transaction
	txOrder []entity.Handle
}

type agentRecord struct {
	agent   entity.Agent
	handles []entity.Handle
}

// NewRegistry returns an empty registry issuing handles from ids.
func NewRegistry(ids pkguid.NumberID) *Registry {
	if ids == nil {
		ids = pkguid.NewSequence(0)
	}

	return &Registry{
		ids:    ids,
		agents: make(map[string]*agentRecord),
		txs:    make(map[entity.Handle]*entity.Transaction),
	}
}

// CreateAgent registers a new book. Accounts on the input are ignored; a book
// only ever gains handles through Create.
func (r *Registry) CreateAgent(ctx context.Context, agent entity.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.agents[agent.Identifier]; exists {
		return entity.ErrAgentExists
	}

	agent.Accounts = nil
	r.agents[agent.Identifier] = &agentRecord{agent: agent}
	r.order = append(r.order, agent.Identifier)

	return nil
}

// UpdateAgent lets fn change an agent's parameters and state variables.
// Changes to Identifier or Accounts made by fn are discarded.
func (r *Registry) UpdateAgent(ctx context.Context, agentID string, fn func(agent *entity.Agent) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.agents[agentID]
	if !ok {
		return entity.ErrAgentNotFound
	}

	updated := rec.agent
	if err := fn(&updated); err != nil {
		return err
	}

	updated.Identifier = agentID
	updated.Accounts = nil
	rec.agent = updated

	return nil
}

// GetAgent returns a copy of the agent with its current handles.
func (r *Registry) GetAgent(ctx context.Context, agentID string) (entity.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.agents[agentID]
	if !ok {
		return entity.Agent{}, entity.ErrAgentNotFound
	}

	return rec.snapshot(), nil
}

// ListAgents returns every agent in registration order.
func (r *Registry) ListAgents(ctx context.Context) []entity.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Agent, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.agents[id].snapshot())
	}

	return out
}

// Create stores tx under a fresh handle and appends the handle to both
// parties' books under one write lock, so no reader sees it on one side only.
func (r *Registry) Create(ctx context.Context, tx entity.Transaction) (entity.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	from, ok := r.agents[tx.From]
	if !ok {
		return 0, entity.ErrAgentNotFound
	}
	to, ok := r.agents[tx.To]
	if !ok {
		return 0, entity.ErrAgentNotFound
	}

	tx.Handle = entity.Handle(r.ids.Generate())
	stored := tx
	r.txs[tx.Handle] = &stored
	r.txOrder = append(r.txOrder, tx.Handle)
	from.handles = append(from.handles, tx.Handle)
	to.handles = append(to.handles, tx.Handle)

	return tx.Handle, nil
}

// Get returns a copy of the transaction behind h.
func (r *Registry) Get(ctx context.Context, h entity.Handle) (entity.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, ok := r.txs[h]
	if !ok {
		return entity.Transaction{}, entity.ErrTransactionNotFound
	}

	return *tx, nil
}

// Remove deletes the transaction behind h from the registry and from both
// parties' books.
func (r *Registry) Remove(ctx context.Context, h entity.Handle) (entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, ok := r.txs[h]
	if !ok {
		return entity.Transaction{}, entity.ErrTransactionNotFound
	}

	removed := *tx
	r.removeLocked(removed)

	return removed, nil
}

// Accounts returns copies of the agent's transactions in book order.
func (r *Registry) Accounts(ctx context.Context, agentID string) ([]entity.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.agents[agentID]
	if !ok {
		return nil, entity.ErrAgentNotFound
	}

	out := make([]entity.Transaction, 0, len(rec.handles))
	for _, h := range rec.handles {
		out = append(out, *r.txs[h])
	}

	return out, nil
}

// Transactions returns copies of every registered transaction in creation order.
func (r *Registry) Transactions(ctx context.Context) []entity.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Transaction, 0, len(r.txOrder))
	for _, h := range r.txOrder {
		out = append(out, *r.txs[h])
	}

	return out
}

// MatureAgent decrements the maturity of every transaction on the agent's
// book by one step, never below zero. It returns how many records changed.
func (r *Registry) MatureAgent(ctx context.Context, agentID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.agents[agentID]
	if !ok {
		return 0, entity.ErrAgentNotFound
	}

	changed := 0
	for _, h := range rec.handles {
		if mature(r.txs[h]) {
			changed++
		}
	}

	return changed, nil
}

// MatureAll decrements every registered transaction exactly once.
func (r *Registry) MatureAll(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := 0
	for _, tx := range r.txs {
		if mature(tx) {
			changed++
		}
	}

	return changed
}

// RemoveWhere removes, in one critical section, every transaction on the
// agent's book for which match returns true. The removed records are
// returned in book order.
func (r *Registry) RemoveWhere(ctx context.Context, agentID string, match func(tx entity.Transaction) bool) ([]entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.agents[agentID]
	if !ok {
		return nil, entity.ErrAgentNotFound
	}

	var doomed []entity.Transaction
	for _, h := range rec.handles {
		if tx := *r.txs[h]; match(tx) {
			doomed = append(doomed, tx)
		}
	}

	for _, tx := range doomed {
		r.removeLocked(tx)
	}

	return doomed, nil
}

// Dangling returns handles referenced by some book but missing from the
// registry. It is empty whenever the registry is used through its methods.
func (r *Registry) Dangling(ctx context.Context) map[string][]entity.Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]entity.Handle)
	for id, rec := range r.agents {
		for _, h := range rec.handles {
			if _, ok := r.txs[h]; !ok {
				out[id] = append(out[id], h)
			}
		}
	}

	return out
}

func (r *Registry) removeLocked(tx entity.Transaction) {
	delete(r.txs, tx.Handle)
	r.txOrder = dropHandle(r.txOrder, tx.Handle)

	if rec, ok := r.agents[tx.From]; ok {
		rec.handles = dropHandle(rec.handles, tx.Handle)
	}
	if rec, ok := r.agents[tx.To]; ok {
		rec.handles = dropHandle(rec.handles, tx.Handle)
	}
}

func (rec *agentRecord) snapshot() entity.Agent {
	agent := rec.agent
	agent.Accounts = slices.Clone(rec.handles)
	if agent.Accounts == nil {
		agent.Accounts = []entity.Handle{}
	}

	return agent
}

func mature(tx *entity.Transaction) bool {
	if tx.Maturity <= 0 {
		tx.Maturity = 0
		return false
	}

	tx.Maturity--
	return true
}

func dropHandle(handles []entity.Handle, h entity.Handle) []entity.Handle {
	return slices.DeleteFunc(handles, func(x entity.Handle) bool {
		return x == h
	})
}
