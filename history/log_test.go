package history

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 1, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("a"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
	assert.Equal(t, 25, EstimateTokens(strings.Repeat("x", 100)))
	assert.Equal(t, 26, EstimateTokens(strings.Repeat("x", 101)))
}

func TestLog_AppendAssignsIDAndTimestamp(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	l := NewLog(func(o *Options) {
		o.Now = func() time.Time { return fixed }
	})

	l.Append(RunRecord{Component: "Run Agent", Agent: "polisher", Model: "gpt-4o-mini", TokensEst: 42, OK: true})

	records := l.All()
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
	assert.Equal(t, fixed, records[0].Timestamp)
	assert.True(t, records[0].OK)
}

func TestLog_AppendKeepsCallerTimestamp(t *testing.T) {
	l := NewLog()
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	l.Append(RunRecord{ID: "fixed-id", Agent: "critic", Timestamp: ts})

	records := l.All()
	require.Len(t, records, 1)
	assert.Equal(t, "fixed-id", records[0].ID)
	assert.Equal(t, ts, records[0].Timestamp)
}

func TestLog_AllReturnsCopy(t *testing.T) {
	l := NewLog()
	l.Append(RunRecord{Agent: "a"})
	l.Append(RunRecord{Agent: "b"})

	records := l.All()
	records[0].Agent = "mutated"

	assert.Equal(t, "a", l.All()[0].Agent)
	assert.Equal(t, 2, l.Len())
}

func TestLog_Clear(t *testing.T) {
	l := NewLog()
	l.Append(RunRecord{Agent: "a"})
	require.Equal(t, 1, l.Len())

	l.Clear()
	assert.Zero(t, l.Len())
	assert.Empty(t, l.All())
}

func TestLog_WriteCSV(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	l := NewLog(func(o *Options) {
		o.Now = func() time.Time { return fixed }
	})
	l.Append(RunRecord{Component: "Workflow Studio", Agent: "note_organizer", Model: "gpt-4o-mini", TokensEst: 120, OK: true})
	l.Append(RunRecord{Component: "Run Agent", Agent: "critic", Model: "claude-3-5-haiku-20241022", TokensEst: 33, OK: false})

	var buf bytes.Buffer
	require.NoError(t, l.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "component,agent,model,tokens_est,ok,timestamp", lines[0])
	assert.Equal(t, "Workflow Studio,note_organizer,gpt-4o-mini,120,true,2026-03-14T09:00:00Z", lines[1])
	assert.Equal(t, "Run Agent,critic,claude-3-5-haiku-20241022,33,false,2026-03-14T09:00:00Z", lines[2])
}
