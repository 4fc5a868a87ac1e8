package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/penwyp/go-chat-stats/internal/core/model"
	"github.com/penwyp/go-chat-stats/internal/core/timeline"
	"github.com/penwyp/go-chat-stats/internal/data/aggregator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioReport builds the two-speaker scenario: alice says "hello world"
// at 2020-01-01 10:00:00 and bob replies "hello there world" a day later
// at 10:05:00.
func scenarioReport(t *testing.T) *Report {
	t.Helper()

	aliceTS := time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)
	bobTS := time.Date(2020, 1, 2, 10, 5, 0, 0, time.UTC)
	facts := model.NewTranscriptFacts([]string{"alice", "bob"}, aliceTS, bobTS)

	agg := aggregator.New()
	binner := timeline.NewBinner(facts, []string{"hello"})

	agg.Observe("alice", []string{"hello", "world"})
	require.NoError(t, binner.Observe("alice", aliceTS, []string{"hello", "world"}))
	agg.Observe("bob", []string{"hello", "there", "world"})
	require.NoError(t, binner.Observe("bob", bobTS, []string{"hello", "there", "world"}))

	return &Report{
		Speakers:    facts.Speakers,
		Frequencies: agg.Finalize(),
		StopWords:   aggregator.DefaultStopWords,
		SpeakerRows: binner.SpeakerRows(),
		KeywordRows: binner.KeywordRows(),
		DayBuckets:  binner.DayBuckets(),
	}
}

func readReport(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	report := scenarioReport(t)

	require.NoError(t, NewFileWriter(dir).WriteAll(report))

	t.Run("summary", func(t *testing.T) {
		content := readReport(t, dir, "summary.txt")
		assert.Contains(t, content, "total length: 5 words")
		assert.Contains(t, content, "bob\t3\t60%")
		assert.Contains(t, content, "alice\t2\t40%")
		assert.Contains(t, content, "LEXICAL DIVERSITY")
		assert.Contains(t, content, "alice\t1\n")
		assert.Contains(t, content, "bob\t1\n")
	})

	t.Run("words", func(t *testing.T) {
		content := readReport(t, dir, "words.txt")
		assert.Equal(t,
			"alice\thello\nalice\tworld\nbob\thello\nbob\tthere\nbob\tworld\n",
			content)
	})

	t.Run("overall word frequencies", func(t *testing.T) {
		content := readReport(t, dir, "overall_word_frequencies.txt")
		assert.Equal(t, "hello\t2\t40\nworld\t2\t40\n", content)
	})

	t.Run("speaker word frequencies filters singletons", func(t *testing.T) {
		content := readReport(t, dir, "speaker_word_frequencies.txt")
		assert.Empty(t, content, "every per-speaker count is 1, all filtered")
	})

	t.Run("bigram files empty for singleton counts", func(t *testing.T) {
		assert.Empty(t, readReport(t, dir, "overall_bigram_frequencies.txt"))
		assert.Empty(t, readReport(t, dir, "speaker_bigram_frequencies.txt"))
	})

	t.Run("speaker timeseries", func(t *testing.T) {
		content := readReport(t, dir, "speaker_timeseries.txt")
		assert.Equal(t, "alice\t2\t0\nbob\t0\t3\n", content)
	})

	t.Run("word timeseries", func(t *testing.T) {
		content := readReport(t, dir, "word_timeseries.txt")
		assert.Equal(t, "hello\t1\t1\n", content)
	})

	t.Run("day timeseries", func(t *testing.T) {
		content := readReport(t, dir, "day_timeseries.txt")
		lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
		require.Len(t, lines, timeline.NumBuckets)
		assert.Equal(t, "5", lines[60], "both messages fall in the 10:00-10:10 bucket")
		assert.Equal(t, "0", lines[0])
	})
}

func TestWriteAllDeterministic(t *testing.T) {
	dirA := filepath.Join(t.TempDir(), "a")
	dirB := filepath.Join(t.TempDir(), "b")

	require.NoError(t, NewFileWriter(dirA).WriteAll(scenarioReport(t)))
	require.NoError(t, NewFileWriter(dirB).WriteAll(scenarioReport(t)))

	entries, err := os.ReadDir(dirA)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.Equal(t,
			readReport(t, dirA, entry.Name()),
			readReport(t, dirB, entry.Name()),
			"re-running must produce byte-identical %s", entry.Name())
	}
}

func TestWriteAllCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	require.NoError(t, NewFileWriter(dir).WriteAll(scenarioReport(t)))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBigramReportKeepsStopWords(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")

	agg := aggregator.New()
	// "the end" appears twice: filtered from unigram reports as a stop
	// word, kept in bigram reports.
	agg.Observe("alice", []string{"the", "end"})
	agg.Observe("alice", []string{"the", "end"})

	ts := time.Date(2020, 3, 1, 9, 0, 0, 0, time.UTC)
	facts := model.NewTranscriptFacts([]string{"alice"}, ts, ts)
	binner := timeline.NewBinner(facts, nil)
	require.NoError(t, binner.Observe("alice", ts, []string{"the", "end"}))
	require.NoError(t, binner.Observe("alice", ts, []string{"the", "end"}))

	report := &Report{
		Speakers:    facts.Speakers,
		Frequencies: agg.Finalize(),
		StopWords:   aggregator.DefaultStopWords,
		SpeakerRows: binner.SpeakerRows(),
		KeywordRows: binner.KeywordRows(),
		DayBuckets:  binner.DayBuckets(),
	}
	require.NoError(t, NewFileWriter(dir).WriteAll(report))

	overall := readReport(t, dir, "overall_word_frequencies.txt")
	assert.NotContains(t, overall, "the", "stop words filtered from unigram report")
	assert.Contains(t, overall, "end\t2")

	bigrams := readReport(t, dir, "overall_bigram_frequencies.txt")
	assert.Contains(t, bigrams, "the end\t2", "stop-word filter must not apply to bigrams")
}
