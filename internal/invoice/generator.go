// Package invoice produces human-readable sale identifiers.
package invoice

import (
	"fmt"
	"sync"
	"time"
)

// Generator yields invoice numbers of the form INV-YYMMDD-HHMMSS-NNNN. The
// timestamp alone is only unique to the second, so a process-wide monotonic
// sequence is appended. Uniqueness across restarts is backstopped by the
// unique index on sales.invoice_no; a collision there surfaces as a commit
// failure, not a silent overwrite.
type Generator struct {
	mu  sync.Mutex
	now func() time.Time
	seq uint64
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorAt uses clock instead of time.Now.
func NewGeneratorAt(clock func() time.Time) *Generator {
	return &Generator{now: clock}
}

func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("INV-%s-%04d", g.now().UTC().Format("060102-150405"), g.seq%10000)
}
