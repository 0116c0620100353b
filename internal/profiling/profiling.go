package profiling

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Profiler accumulates per-frame CPU time by name.
type Profiler struct {
	mu          sync.Mutex
	frameTotals map[string]time.Duration
}

func New() *Profiler {
	return &Profiler{frameTotals: make(map[string]time.Duration)}
}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer prof.Track("renderer.Render")()
func (p *Profiler) Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		p.mu.Lock()
		p.frameTotals[name] += d
		p.mu.Unlock()
	}
}

// ResetFrame clears the per-frame totals. Call at the start of each frame.
func (p *Profiler) ResetFrame() {
	p.mu.Lock()
	clear(p.frameTotals)
	p.mu.Unlock()
}

// Snapshot returns a copy of the current per-frame totals.
func (p *Profiler) Snapshot() map[string]time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]time.Duration, len(p.frameTotals))
	for k, v := range p.frameTotals {
		out[k] = v
	}
	return out
}

// SumWithPrefix adds up every entry whose name starts with prefix.
func (p *Profiler) SumWithPrefix(prefix string) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	var sum time.Duration
	for k, v := range p.frameTotals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n largest entries of the current frame, largest first.
// Example: "renderer.Render:4.2ms, glfw.SwapBuffers:2.1ms"
func (p *Profiler) TopN(n int) string {
	ss := p.Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for i := range n {
		ms := float64(list[i].dur.Microseconds()) / 1000.0
		parts = append(parts, list[i].name+":"+formatMs(ms))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(ms float64) string {
	return strconv.FormatFloat(math.Floor(ms*10+1e-6)/10, 'f', -1, 64) + "ms"
}
