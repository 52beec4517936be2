package testutil

import (
	"fmt"
	"sync"
)

// SequentialRunIDs generates run ids "run-001", "run-002", ...
//
// Two generators created the same way yield the same sequence, which keeps
// golden reports byte-identical across test runs.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequentialRunIDs struct {
	mu  sync.Mutex
	seq int
}

// NewSequentialRunIDs creates a generator whose first id is "run-001".
func NewSequentialRunIDs() *SequentialRunIDs {
	return &SequentialRunIDs{}
}

// Generate returns the next run id.
func (g *SequentialRunIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("run-%03d", g.seq)
}

// Reset restarts the sequence at "run-001".
func (g *SequentialRunIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
