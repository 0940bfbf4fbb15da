package pipeline

import (
	"sync"
	"time"
)

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	RunID       string
	Total       int // Every input that entered the pipeline.
	Encoded     int // Signature detected.
	Decoded     int
	Copied      int // Not encoded; copied unchanged.
	Skipped     int
	Errored     int
	Plausible   int // Decoded outputs whose verdict was plausible.
	BytesIn     int64
	Elapsed     time.Duration
	Interrupted bool
}

// SuccessRate is the share of inputs that were decoded, in percent.
// Zero for an empty run.
func (s RunStats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Decoded) * 100 / float64(s.Total)
}

// statsRecorder serializes outcome recording across workers.
type statsRecorder struct {
	mu    sync.Mutex
	stats RunStats
}

// record counts o exactly once, in the category of its terminal state.
func (r *statsRecorder) record(o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &r.stats
	s.Total++
	if o.Encoded {
		s.Encoded++
	}
	s.BytesIn += o.Size
	switch o.State {
	case StateSkipped:
		s.Skipped++
	case StateDecoded:
		s.Decoded++
		if o.Verdict != nil && o.Verdict.Plausible {
			s.Plausible++
		}
	case StateCopied:
		s.Copied++
	case StateErrored:
		s.Errored++
	}
}

func (r *statsRecorder) snapshot() RunStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}
