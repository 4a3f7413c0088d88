package agent

import (
	"scout/pkg/api"
)

// Confidence scoring constants. The score starts at a neutral base and is
// raised by evidence signals observed during the run; it never exceeds the
// cap because tool-gathered evidence is still secondhand.
const (
	confidenceBase       = 0.5
	confidenceSearch     = 0.2
	confidenceDeepRead   = 0.15
	confidenceSources    = 0.15
	confidenceCap        = 0.95
	confidenceAborted    = 0.3
	confidenceModelError = 0.1

	sourcesForBonus = 3
)

// resultAggregator accumulates evidence across all dispatch rounds of a
// single run: which tools were invoked, and the sources mentioned in their
// successful results. It is confined to one Process call and needs no
// locking; dispatch goroutines hand results back before observation.
type resultAggregator struct {
	toolOrder []string
	toolSeen  map[string]bool

	sources []api.Source
	urlSeen map[string]bool
}

func newResultAggregator() *resultAggregator {
	return &resultAggregator{
		toolSeen: make(map[string]bool),
		urlSeen:  make(map[string]bool),
	}
}

// RecordTool notes that a tool was dispatched. The record is kept even when
// the execution later fails: the answer's tool trace reflects attempts, not
// outcomes. Order of first use is preserved.
func (a *resultAggregator) RecordTool(name string) {
	if a.toolSeen[name] {
		return
	}
	a.toolSeen[name] = true
	a.toolOrder = append(a.toolOrder, name)
}

// Observe scans a successful tool result for source references. Failed
// results carry no trustworthy data and are skipped.
func (a *resultAggregator) Observe(res *api.ToolResult) {
	if res == nil || !res.Success || res.Data == nil {
		return
	}

	// Singular form: {"title": ..., "url": ...} at the top level
	// (extract and summarize results).
	a.addSource(res.Data)

	// List form: {"results": [{"title": ..., "url": ...}, ...]}
	// (search results).
	if results, ok := res.Data["results"].([]any); ok {
		for _, entry := range results {
			if m, ok := entry.(map[string]any); ok {
				a.addSource(m)
			}
		}
	}
}

func (a *resultAggregator) addSource(m map[string]any) {
	url, _ := m["url"].(string)
	title, _ := m["title"].(string)
	if url == "" || a.urlSeen[url] {
		return
	}
	a.urlSeen[url] = true
	a.sources = append(a.sources, api.Source{Title: title, URL: url})
}

// Tools returns the distinct tools dispatched, in order of first use.
func (a *resultAggregator) Tools() []string {
	out := make([]string, len(a.toolOrder))
	copy(out, a.toolOrder)
	return out
}

// Sources returns the accumulated sources, truncated to limit. Accumulation
// itself is unbounded; the cut happens only here, at answer-building time.
func (a *resultAggregator) Sources(limit int) []api.Source {
	out := a.sources
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	copied := make([]api.Source, len(out))
	copy(copied, out)
	return copied
}

// Confidence derives the score for a normally completed run from the
// evidence gathered.
func (a *resultAggregator) Confidence() float64 {
	score := confidenceBase
	if a.toolSeen["search"] {
		score += confidenceSearch
	}
	if a.toolSeen["extract"] || a.toolSeen["summarize"] {
		score += confidenceDeepRead
	}
	if len(a.sources) >= sourcesForBonus {
		score += confidenceSources
	}
	if score > confidenceCap {
		score = confidenceCap
	}
	return score
}
