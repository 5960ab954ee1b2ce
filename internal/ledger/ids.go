package ledger

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces the unique ids stamped on new entries. Injected so
// tests can run with a deterministic sequence.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator is the production generator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// SequenceGenerator yields "id-1", "id-2", ... for deterministic tests.
type SequenceGenerator struct {
	n atomic.Int64
}

func (g *SequenceGenerator) NewID() string {
	return fmt.Sprintf("id-%d", g.n.Add(1))
}
