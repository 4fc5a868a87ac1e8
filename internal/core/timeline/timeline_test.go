package timeline

import (
	"testing"
	"time"

	"github.com/penwyp/go-chat-stats/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFacts(t *testing.T) model.TranscriptFacts {
	t.Helper()
	first := time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)
	last := time.Date(2020, 1, 2, 10, 5, 0, 0, time.UTC)
	return model.NewTranscriptFacts([]string{"alice", "bob"}, first, last)
}

func TestBucket(t *testing.T) {
	tests := []struct {
		name     string
		ts       time.Time
		expected int
	}{
		{"midnight", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"just before ten past midnight", time.Date(2020, 1, 1, 0, 9, 59, 0, time.UTC), 0},
		{"ten past midnight", time.Date(2020, 1, 1, 0, 10, 0, 0, time.UTC), 1},
		{"ten am", time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC), 60},
		{"ten oh five am", time.Date(2020, 1, 1, 10, 5, 0, 0, time.UTC), 60},
		{"end of day", time.Date(2020, 1, 1, 23, 59, 59, 0, time.UTC), 143},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Bucket(tt.ts))
		})
	}
}

func TestObserveScenario(t *testing.T) {
	// alice says "hello world" on day 0 at 10:00, bob replies
	// "hello there world" on day 1 at 10:05.
	facts := newFacts(t)
	b := NewBinner(facts, []string{"hello"})

	require.NoError(t, b.Observe("alice", time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC),
		[]string{"hello", "world"}))
	require.NoError(t, b.Observe("bob", time.Date(2020, 1, 2, 10, 5, 0, 0, time.UTC),
		[]string{"hello", "there", "world"}))

	speakerRows := b.SpeakerRows()
	require.Len(t, speakerRows, 2)
	assert.Equal(t, Row{Label: "alice", Counts: []int{2, 0}}, speakerRows[0])
	assert.Equal(t, Row{Label: "bob", Counts: []int{0, 3}}, speakerRows[1])

	keywordRows := b.KeywordRows()
	require.Len(t, keywordRows, 1)
	assert.Equal(t, Row{Label: "hello", Counts: []int{1, 1}}, keywordRows[0])

	buckets := b.DayBuckets()
	assert.Equal(t, 5, buckets[60], "10:00 and 10:05 share bucket 60, so it accumulates 2+3")
}

func TestObserveBucketsAccumulate(t *testing.T) {
	facts := newFacts(t)
	b := NewBinner(facts, nil)

	require.NoError(t, b.Observe("alice", time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC),
		[]string{"hello", "world"}))
	require.NoError(t, b.Observe("bob", time.Date(2020, 1, 2, 10, 15, 0, 0, time.UTC),
		[]string{"hello", "there", "world"}))

	buckets := b.DayBuckets()
	assert.Equal(t, 2, buckets[60])
	assert.Equal(t, 3, buckets[61])
	assert.Equal(t, 5, b.TotalTokens(), "bucket sum must equal total tokens")
}

func TestObserveDateRangeViolation(t *testing.T) {
	facts := newFacts(t)
	b := NewBinner(facts, nil)

	err := b.Observe("alice", time.Date(2020, 1, 10, 9, 0, 0, 0, time.UTC), []string{"late"})
	assert.ErrorIs(t, err, model.ErrDateRangeViolation)

	err = b.Observe("alice", time.Date(2019, 12, 31, 9, 0, 0, 0, time.UTC), []string{"early"})
	assert.ErrorIs(t, err, model.ErrDateRangeViolation)
}

func TestObserveUnknownSpeaker(t *testing.T) {
	facts := newFacts(t)
	b := NewBinner(facts, nil)

	err := b.Observe("mallory", time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC), []string{"hi"})
	assert.Error(t, err)
}

func TestFirstAndLastDayIndices(t *testing.T) {
	facts := newFacts(t)
	b := NewBinner(facts, nil)

	require.NoError(t, b.Observe("alice", time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC), []string{"first"}))
	require.NoError(t, b.Observe("bob", time.Date(2020, 1, 2, 23, 59, 59, 0, time.UTC), []string{"last"}))

	rows := b.SpeakerRows()
	assert.Equal(t, 1, rows[0].Counts[0], "first message lands on day 0")
	assert.Equal(t, 1, rows[1].Counts[facts.NDays], "last message lands on day NDays")
}
