package monitor

import (
	"sync/atomic"
	"time"
)

// Stats collects runtime counters across concurrent orchestrator runs.
// All fields are updated atomically; a nil *Stats is safe to use so the
// orchestrator can run without monitoring wired in (tests do this).
type Stats struct {
	started time.Time

	queries       atomic.Int64
	toolDispatch  atomic.Int64
	abortedRuns   atomic.Int64
	modelFailures atomic.Int64

	backendMode atomic.Value // string
}

// NewStats creates a Stats collector for the given backend mode.
func NewStats(backendMode string) *Stats {
	s := &Stats{started: time.Now()}
	s.backendMode.Store(backendMode)
	return s
}

func (s *Stats) RecordQuery() {
	if s == nil {
		return
	}
	s.queries.Add(1)
}

func (s *Stats) RecordToolDispatch() {
	if s == nil {
		return
	}
	s.toolDispatch.Add(1)
}

func (s *Stats) RecordAborted() {
	if s == nil {
		return
	}
	s.abortedRuns.Add(1)
}

func (s *Stats) RecordModelFailure() {
	if s == nil {
		return
	}
	s.modelFailures.Add(1)
}

// Snapshot is the JSON shape served by the /stats endpoint.
type Snapshot struct {
	UptimeSeconds int64  `json:"uptime_seconds"`
	Queries       int64  `json:"queries"`
	ToolDispatch  int64  `json:"tool_dispatches"`
	AbortedRuns   int64  `json:"aborted_runs"`
	ModelFailures int64  `json:"model_failures"`
	BackendMode   string `json:"backend_mode"`
}

// Snapshot returns a point-in-time copy of all counters.
func (s *Stats) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	mode, _ := s.backendMode.Load().(string)
	return Snapshot{
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Queries:       s.queries.Load(),
		ToolDispatch:  s.toolDispatch.Load(),
		AbortedRuns:   s.abortedRuns.Load(),
		ModelFailures: s.modelFailures.Load(),
		BackendMode:   mode,
	}
}
