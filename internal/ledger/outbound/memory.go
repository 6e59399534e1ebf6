package outbound

import (
	"context"
	"sync"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
)

// MemorySink keeps the exported graph in memory, keyed the same way the
// Neo4j sink merges: agents by identifier, edges by handle.
type MemorySink struct {
	mu     sync.RWMutex
	agents map[string]entity.Agent
	edges  map[entity.Handle]entity.Transaction
	writes int
}

func NewMemorySink() *MemorySink {
	return &MemorySink{
		agents: make(map[string]entity.Agent),
		edges:  make(map[entity.Handle]entity.Transaction),
	}
}

func (s *MemorySink) WriteAgent(_ context.Context, agent entity.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agents[agent.Identifier] = agent
	s.writes++
	return nil
}

func (s *MemorySink) WriteTransaction(_ context.Context, tx entity.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agents[tx.From]; !ok {
		return nil
	}
	if _, ok := s.agents[tx.To]; !ok {
		return nil
	}

	s.edges[tx.Handle] = tx
	s.writes++
	return nil
}

// Agent returns the exported node for identifier.
func (s *MemorySink) Agent(identifier string) (entity.Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.agents[identifier]
	return a, ok
}

// Edge returns the exported relationship for h.
func (s *MemorySink) Edge(h entity.Handle) (entity.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.edges[h]
	return tx, ok
}

// Counts returns the number of nodes, edges and total writes seen.
func (s *MemorySink) Counts() (agents, edges, writes int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.agents), len(s.edges), s.writes
}

func (s *MemorySink) Close(context.Context) error {
	return nil
}
