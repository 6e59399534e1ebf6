package pkguid

import (
	"crypto/rand"
	"encoding/binary"
	"sync/atomic"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates numeric IDs using the Snowflake algorithm.
type Snowflake struct {
	node *snowflake.Node
}

func generateRandomNodeID() (int64, error) {
	var nodeID int64
	if err := binary.Read(rand.Reader, binary.BigEndian, &nodeID); err != nil {
		return 0, err
	}

	return nodeID & (1<<snowflake.NodeBits - 1), nil
}

// NewSnowflake constructs a Snowflake generator with a random node ID.
func NewSnowflake() (*Snowflake, error) {
	nodeID, err := generateRandomNodeID()
	if err != nil {
		return nil, err
	}

	return NewSnowflakeNode(nodeID)
}

// NewSnowflakeNode constructs a Snowflake generator pinned to nodeID.
func NewSnowflakeNode(nodeID int64) (*Snowflake, error) {
	snowflake.Epoch = 1451606400000 // Fri Jan 01 2016 00:00:00.000 UTC

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new unique numeric ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

// Sequence hands out 1, 2, 3, ... and is safe for concurrent use.
// Simulations use it when reproducible transaction handles matter more than
// global uniqueness.
type Sequence struct {
	n atomic.Int64
}

// NewSequence returns a Sequence starting after start.
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.n.Store(start)
	return s
}

// Generate returns the next number in the sequence.
func (s *Sequence) Generate() int64 {
	return s.n.Add(1)
}
