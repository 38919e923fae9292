// Package ids generates unique identifiers for marts and inventory items.
package ids

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// MaxSafe is the largest integer a float64 (and so a JavaScript number)
// holds exactly. Every generated ID stays at or below it.
const MaxSafe = 1<<53 - 1

// Layout: 41 bits of milliseconds since epoch, 2 node bits, 10 step bits.
// 41 bits of milliseconds last until 2094.
const (
	epochMillis = 1735689600000 // 2025-01-01T00:00:00Z
	nodeBits    = 2
	stepBits    = 10
)

// MaxNode is the highest accepted node number.
const MaxNode = 1<<nodeBits - 1

// snowflake keeps its layout in package variables read by NewNode.
var layoutMu sync.Mutex

// Generator hands out unique int64 identifiers.
type Generator interface {
	Next() int64
}

// Snowflake generates time-ordered IDs that stay unique when many are
// requested within the same millisecond.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake returns a generator for the given node number (0-MaxNode).
func NewSnowflake(node int64) (*Snowflake, error) {
	layoutMu.Lock()
	snowflake.Epoch = epochMillis
	snowflake.NodeBits = nodeBits
	snowflake.StepBits = stepBits
	n, err := snowflake.NewNode(node)
	layoutMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("creating snowflake node: %w", err)
	}
	return &Snowflake{node: n}, nil
}

// Next returns a new ID.
func (s *Snowflake) Next() int64 {
	return s.node.Generate().Int64()
}
