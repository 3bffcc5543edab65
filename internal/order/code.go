package order

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// CodePrefix starts every human-facing order code.
const CodePrefix = "ORD-"

// CodeGenerator renders order codes as CodePrefix followed by the
// upper-case base36 form of a millisecond counter.  The counter follows the
// wall clock but never repeats or goes backwards within a process; bursts
// inside one millisecond borrow the following milliseconds.
type CodeGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewCodeGenerator returns a generator driven by the system clock.
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{now: time.Now}
}

// Next returns a code that differs from every earlier one from g.
func (g *CodeGenerator) Next() string {
	g.mu.Lock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	g.mu.Unlock()
	return CodePrefix + strings.ToUpper(strconv.FormatInt(ms, 36))
}
