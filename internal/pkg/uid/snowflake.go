package uid

import (
	"hash/fnv"
	"os"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates 63-bit, roughly time-ordered numeric IDs.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake derives the node number from the hostname so replicas rarely collide.
func NewSnowflake() (*Snowflake, error) {
	host, _ := os.Hostname()
	h := fnv.New32a()
	_, _ = h.Write([]byte(host))

	node, err := snowflake.NewNode(int64(h.Sum32() % 1024))
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
