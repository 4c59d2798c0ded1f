// Package profile records elapsed wall-clock time per named simulation
// section and reports per-iteration averages.
package profile

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"text/tabwriter"
	"time"
)

// Profiler accumulates section timings. Sections appear in the report in
// first-use order. Safe for concurrent Record calls.
type Profiler struct {
	mu       sync.Mutex
	order    []string
	sections map[string]*section
}

type section struct {
	total time.Duration
	count int
}

func New() *Profiler {
	return &Profiler{sections: make(map[string]*section)}
}

// Start begins timing a section and returns the function that stops it.
//
//	defer prof.Start("octree creation")()
func (p *Profiler) Start(name string) func() {
	if p == nil {
		return func() {}
	}
	begin := time.Now()
	return func() {
		p.Record(name, time.Since(begin))
	}
}

// Record adds one timed pass over a section.
func (p *Profiler) Record(name string, d time.Duration) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sections[name]
	if !ok {
		s = &section{}
		p.sections[name] = s
		p.order = append(p.order, name)
	}
	s.total += d
	s.count++
}

// Average returns the mean duration of one pass over a section.
func (p *Profiler) Average(name string) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sections[name]
	if !ok || s.count == 0 {
		return 0
	}
	return s.total / time.Duration(s.count)
}

// Report renders the per-iteration averages as a text table.
func (p *Profiler) Report() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	fmt.Fprintln(&b, "all times in milliseconds, averaged per iteration")

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	var overall float64
	for _, name := range p.order {
		s := p.sections[name]
		avg := 0.0
		if s.count > 0 {
			avg = float64(s.total.Microseconds()) / float64(s.count) / 1000.0
		}
		overall += avg
		fmt.Fprintf(w, "%s:\t%.3f\n", name, avg)
	}
	fmt.Fprintf(w, "overall:\t%.3f\n", overall)
	w.Flush()

	return b.String()
}

// WriteReport writes the report to path.
func (p *Profiler) WriteReport(path string) error {
	if err := os.WriteFile(path, []byte(p.Report()), 0644); err != nil {
		return fmt.Errorf("unable to write profile report %s: %w", path, err)
	}
	return nil
}
