package outbound

import (
	"context"
	"errors"
	"fmt"

	"github.com/jkpaulin/BlackRhino/internal/ledger/entity"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

var ErrMissingURI = errors.New("graph uri is required")

const (
	cypherMergeAgent = `MERGE (a:Agent {identifier: $identifier})
SET a.role = $role, a.active = $active, a.liquidity = $liquidity`

	cypherMergeTransaction = `MATCH (f:Agent {identifier: $from}), (t:Agent {identifier: $to})
MERGE (f)-[r:TRANSACTION {handle: $handle}]->(t)
SET r.type = $type, r.asset_class = $asset_class, r.amount = $amount,
    r.interest = $interest, r.maturity = $maturity, r.time_of_default = $time_of_default`
)

// Options configures the Neo4j connection. An empty Database uses the
// server default; an empty Username connects without auth.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

type cypherWriter interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) error
	Close(ctx context.Context) error
}

// Neo4jSink exports the ledger as a property graph: one Agent node per book
// and one TRANSACTION relationship per entry, keyed by handle so a repeated
// export updates in place.
type Neo4jSink struct {
	w cypherWriter
}

func NewNeo4jSink(ctx context.Context, opts Options) (*Neo4jSink, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}

	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI, auth, func(c *neo4j.Config) {
		if opts.MaxConnections > 0 {
			c.MaxConnectionPoolSize = opts.MaxConnections
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}

	return &Neo4jSink{w: &neo4jWriter{driver: driver, database: opts.Database}}, nil
}

func (s *Neo4jSink) WriteAgent(ctx context.Context, agent entity.Agent) error {
	return s.w.ExecuteWrite(ctx, cypherMergeAgent, agentParams(agent))
}

func (s *Neo4jSink) WriteTransaction(ctx context.Context, tx entity.Transaction) error {
	return s.w.ExecuteWrite(ctx, cypherMergeTransaction, transactionParams(tx))
}

func (s *Neo4jSink) Close(ctx context.Context) error {
	return s.w.Close(ctx)
}

// Amounts are sent as strings; Neo4j floats would lose decimal precision.
func agentParams(agent entity.Agent) map[string]any {
	return map[string]any{
		"identifier": agent.Identifier,
		"role":       string(agent.Role),
		"active":     agent.Parameters.Active,
		"liquidity":  agent.StateVariables.Liquidity.String(),
	}
}

func transactionParams(tx entity.Transaction) map[string]any {
	return map[string]any{
		"handle":          int64(tx.Handle),
		"from":            tx.From,
		"to":              tx.To,
		"type":            string(tx.Type),
		"asset_class":     tx.AssetClass,
		"amount":          tx.Amount.String(),
		"interest":        tx.Interest.String(),
		"maturity":        tx.Maturity,
		"time_of_default": tx.TimeOfDefault,
	}
}

type neo4jWriter struct {
	driver   neo4j.DriverWithContext
	database string
}

// ExecuteWrite runs cypher in a managed write transaction, so the driver
// retries it on transient cluster errors.
func (w *neo4jWriter) ExecuteWrite(ctx context.Context, cypher string, params map[string]any) error {
	session := w.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: w.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, writeWork(ctx, cypher, params))
	return err
}

func writeWork(ctx context.Context, cypher string, params map[string]any) neo4j.ManagedTransactionWork {
	return func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}

		return res.Consume(ctx)
	}
}

func (w *neo4jWriter) Close(ctx context.Context) error {
	return w.driver.Close(ctx)
}
