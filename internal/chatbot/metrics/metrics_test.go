package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestMetrics() *ChatMetrics {
	m := GetChatMetrics()
	m.Reset()
	return m
}

func TestGetChatMetrics(t *testing.T) {
	m1 := GetChatMetrics()
	m2 := GetChatMetrics()
	assert.Same(t, m1, m2)
}

func TestRecordQuery(t *testing.T) {
	m := newTestMetrics()

	m.RecordQuery(true, nil)
	m.RecordQuery(false, nil)
	m.RecordQuery(false, assert.AnError)

	stats := m.Stats()
	queries := stats["queries"].(map[string]interface{})
	assert.Equal(t, uint64(3), queries["total"])
	assert.Equal(t, uint64(1), queries["cache_hits"])
	assert.Equal(t, uint64(1), queries["cache_misses"])
	assert.Equal(t, uint64(1), queries["errors"])
	assert.InDelta(t, 0.5, queries["cache_hit_rate"], 0.0001)
}

func TestRecordIntent(t *testing.T) {
	m := newTestMetrics()

	m.RecordIntent("GREETING")
	m.RecordIntent("TRADE")
	m.RecordIntent("TRADE")
	m.RecordIntent("STATS")
	m.RecordIntent("GENERAL")
	// Unknown labels count as general.
	m.RecordIntent("SOMETHING")

	intents := m.Stats()["intents"].(map[string]interface{})
	assert.Equal(t, uint64(1), intents["greeting"])
	assert.Equal(t, uint64(2), intents["trade"])
	assert.Equal(t, uint64(1), intents["stats"])
	assert.Equal(t, uint64(2), intents["general"])
}

func TestRecordRetrieval(t *testing.T) {
	m := newTestMetrics()

	m.RecordRetrieval(100*time.Millisecond, nil)
	m.RecordRetrieval(50*time.Millisecond, assert.AnError)

	retrieval := m.Stats()["retrieval"].(map[string]interface{})
	assert.Equal(t, uint64(2), retrieval["total"])
	assert.Equal(t, uint64(1), retrieval["errors"])
	assert.InDelta(t, 0.1, retrieval["total_duration_secs"], 0.01)
}

func TestRecordLLMCall(t *testing.T) {
	m := newTestMetrics()

	m.RecordLLMCall(500*time.Millisecond, 100, 50, nil)
	m.RecordLLMCall(200*time.Millisecond, 0, 0, assert.AnError)

	llm := m.Stats()["llm"].(map[string]interface{})
	assert.Equal(t, uint64(2), llm["calls_total"])
	assert.Equal(t, uint64(1), llm["errors"])
	assert.Equal(t, uint64(100), llm["tokens_prompt"])
	assert.Equal(t, uint64(50), llm["tokens_completion"])
	assert.InDelta(t, 0.5, llm["total_duration_secs"], 0.01)
}

func TestRecordRebuild(t *testing.T) {
	m := newTestMetrics()

	m.RecordRebuild(120, nil)
	m.RecordRebuild(0, assert.AnError)

	indexing := m.Stats()["indexing"].(map[string]interface{})
	assert.Equal(t, uint64(1), indexing["rebuilds"])
	assert.Equal(t, uint64(120), indexing["documents_indexed"])
	assert.Equal(t, uint64(1), indexing["errors"])
}

func TestExport(t *testing.T) {
	m := newTestMetrics()

	m.RecordQuery(false, nil)
	m.RecordIntent("STATS")
	m.RecordLLMCall(time.Millisecond, 10, 5, nil)
	m.RecordRebuild(3, nil)

	output := m.Export("chatbot", "")

	assert.Contains(t, output, "chatbot_queries_total 1")
	assert.Contains(t, output, "chatbot_intent_stats_total 1")
	assert.Contains(t, output, "chatbot_llm_calls_total 1")
	assert.Contains(t, output, "chatbot_documents_indexed_total 3")
	assert.Contains(t, output, "# HELP chatbot_queries_total")
	assert.Contains(t, output, "# TYPE chatbot_queries_total counter")
	assert.Contains(t, output, "chatbot_uptime_seconds")
}

func TestExportWithSubsystem(t *testing.T) {
	m := newTestMetrics()
	output := m.Export("chatbot", "pipeline")
	assert.Contains(t, output, "chatbot_pipeline_queries_total 0")
}

func TestReset(t *testing.T) {
	m := newTestMetrics()
	m.RecordQuery(false, nil)
	m.RecordRebuild(5, nil)

	m.Reset()

	stats := m.Stats()
	queries := stats["queries"].(map[string]interface{})
	assert.Equal(t, uint64(0), queries["total"])
	indexing := stats["indexing"].(map[string]interface{})
	assert.Equal(t, uint64(0), indexing["documents_indexed"])
}

func TestConcurrentAccess(t *testing.T) {
	m := newTestMetrics()

	var wg sync.WaitGroup
	numGoroutines := 100
	operationsPerGoroutine := 100

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				m.RecordQuery(j%2 == 0, nil)
				m.RecordLLMCall(time.Millisecond, 10, 5, nil)
			}
		}()
	}
	wg.Wait()

	expected := uint64(numGoroutines * operationsPerGoroutine)
	queries := m.Stats()["queries"].(map[string]interface{})
	assert.Equal(t, expected, queries["total"])

	llm := m.Stats()["llm"].(map[string]interface{})
	assert.Equal(t, expected, llm["calls_total"])
	assert.Equal(t, expected*10, llm["tokens_prompt"])
	assert.Equal(t, expected*5, llm["tokens_completion"])
}
