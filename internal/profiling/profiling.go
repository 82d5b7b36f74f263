// Package profiling times the phases of one regeneration pass.
package profiling

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Phase is one timed span of a pass.
type Phase struct {
	Name     string
	Duration time.Duration
}

// Pass collects phase durations for a single regeneration. Each pass
// owns its own instance; timings travel with the result instead of
// accumulating in shared state.
type Pass struct {
	mu     sync.Mutex
	phases []Phase
}

func NewPass() *Pass {
	return &Pass{}
}

// Track returns a stop function that records the elapsed time as a
// phase. Usage: defer p.Track("extract")()
func (p *Pass) Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		p.mu.Lock()
		p.phases = append(p.phases, Phase{Name: name, Duration: d})
		p.mu.Unlock()
	}
}

// Phases returns the recorded phases in completion order.
func (p *Pass) Phases() []Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Phase, len(p.phases))
	copy(out, p.phases)
	return out
}

// Total returns the summed duration of all recorded phases.
func (p *Pass) Total() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	var total time.Duration
	for _, ph := range p.phases {
		total += ph.Duration
	}
	return total
}

// String formats the phases as "name:1.25ms, name:0.4ms".
func (p *Pass) String() string {
	var b strings.Builder
	for i, ph := range p.Phases() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ph.Name)
		b.WriteByte(':')
		ms := float64(ph.Duration.Microseconds()) / 1000.0
		b.WriteString(strconv.FormatFloat(ms, 'f', -1, 64))
		b.WriteString("ms")
	}
	return b.String()
}
