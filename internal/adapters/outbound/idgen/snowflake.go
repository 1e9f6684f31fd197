// Package idgen issues invoice ids.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Snowflake implements domain.IDGenerator. Ids are time-ordered and unique
// per till node.
type Snowflake struct {
	node *snowflake.Node
}

// New creates a generator for till node (0-1023).
func New(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("creating id node %d: %w", node, err)
	}
	return &Snowflake{node: n}, nil
}

func (s *Snowflake) NextID() string {
	return s.node.Generate().String()
}
