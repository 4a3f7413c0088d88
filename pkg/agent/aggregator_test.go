package agent

import (
	"testing"

	"scout/pkg/api"

	"github.com/stretchr/testify/assert"
)

func TestAggregator_Confidence(t *testing.T) {
	t.Run("base score with no evidence", func(t *testing.T) {
		agg := newResultAggregator()
		assert.InDelta(t, 0.5, agg.Confidence(), 1e-9)
	})

	t.Run("search bonus", func(t *testing.T) {
		agg := newResultAggregator()
		agg.RecordTool("search")
		assert.InDelta(t, 0.7, agg.Confidence(), 1e-9)
	})

	t.Run("deep read bonus counts once", func(t *testing.T) {
		agg := newResultAggregator()
		agg.RecordTool("extract")
		agg.RecordTool("summarize")
		assert.InDelta(t, 0.65, agg.Confidence(), 1e-9)
	})

	t.Run("source bonus needs three distinct sources", func(t *testing.T) {
		agg := newResultAggregator()
		agg.Observe(&api.ToolResult{Success: true, Data: map[string]any{
			"results": []any{
				map[string]any{"title": "a", "url": "https://a"},
				map[string]any{"title": "b", "url": "https://b"},
			},
		}})
		assert.InDelta(t, 0.5, agg.Confidence(), 1e-9)

		agg.Observe(&api.ToolResult{Success: true, Data: map[string]any{
			"title": "c", "url": "https://c",
		}})
		assert.InDelta(t, 0.65, agg.Confidence(), 1e-9)
	})

	t.Run("full evidence is capped", func(t *testing.T) {
		agg := newResultAggregator()
		agg.RecordTool("search")
		agg.RecordTool("extract")
		for _, u := range []string{"https://a", "https://b", "https://c"} {
			agg.Observe(&api.ToolResult{Success: true, Data: map[string]any{"title": "t", "url": u}})
		}
		assert.InDelta(t, 0.95, agg.Confidence(), 1e-9)
	})
}

func TestAggregator_Sources(t *testing.T) {
	t.Run("deduplicates by URL", func(t *testing.T) {
		agg := newResultAggregator()
		agg.Observe(&api.ToolResult{Success: true, Data: map[string]any{"title": "first", "url": "https://a"}})
		agg.Observe(&api.ToolResult{Success: true, Data: map[string]any{"title": "second", "url": "https://a"}})

		sources := agg.Sources(10)
		assert.Len(t, sources, 1)
		assert.Equal(t, "first", sources[0].Title, "first sighting wins")
	})

	t.Run("failed results are ignored", func(t *testing.T) {
		agg := newResultAggregator()
		agg.Observe(&api.ToolResult{Success: false, Data: map[string]any{"title": "x", "url": "https://x"}})
		agg.Observe(nil)
		assert.Empty(t, agg.Sources(10))
	})

	t.Run("entries without a URL are skipped", func(t *testing.T) {
		agg := newResultAggregator()
		agg.Observe(&api.ToolResult{Success: true, Data: map[string]any{
			"results": []any{
				map[string]any{"title": "no url"},
				map[string]any{"title": "ok", "url": "https://ok"},
				"not a map",
			},
		}})
		sources := agg.Sources(10)
		assert.Len(t, sources, 1)
		assert.Equal(t, "https://ok", sources[0].URL)
	})

	t.Run("limit truncates but accumulation is unbounded", func(t *testing.T) {
		agg := newResultAggregator()
		for i := 0; i < 8; i++ {
			agg.Observe(&api.ToolResult{Success: true, Data: map[string]any{
				"title": "t", "url": string(rune('a'+i)) + "://x",
			}})
		}
		assert.Len(t, agg.Sources(5), 5)
		assert.Len(t, agg.Sources(0), 8)
	})
}

func TestAggregator_ToolOrder(t *testing.T) {
	agg := newResultAggregator()
	agg.RecordTool("extract")
	agg.RecordTool("search")
	agg.RecordTool("extract")

	assert.Equal(t, []string{"extract", "search"}, agg.Tools())
}
