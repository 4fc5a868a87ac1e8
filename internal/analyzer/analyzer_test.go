package analyzer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/penwyp/go-chat-stats/internal/core/model"
	"github.com/penwyp/go-chat-stats/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, b *fixtures.TranscriptBuilder) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.txt")
	require.NoError(t, b.WriteFile(path))
	return path
}

func readResult(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestRunEndToEnd(t *testing.T) {
	resultsDir := filepath.Join(t.TempDir(), "results")
	a := New(&Config{
		TranscriptPath: writeTranscript(t, fixtures.SimpleConversation()),
		ResultsDir:     resultsDir,
		Keywords:       []string{"hello"},
		Seed:           1,
	})

	require.NoError(t, a.Run())

	summary := readResult(t, resultsDir, "summary.txt")
	assert.Contains(t, summary, "total length: 5 words")
	assert.Contains(t, summary, "bob\t3\t60%")
	assert.Contains(t, summary, "alice\t2\t40%")

	assert.Equal(t, "alice\t2\t0\nbob\t0\t3\n",
		readResult(t, resultsDir, "speaker_timeseries.txt"))
	assert.Equal(t, "hello\t1\t1\n",
		readResult(t, resultsDir, "word_timeseries.txt"))

	dayLines := strings.Split(strings.TrimRight(readResult(t, resultsDir, "day_timeseries.txt"), "\n"), "\n")
	require.Len(t, dayLines, 144)
	assert.Equal(t, "5", dayLines[60])

	assert.FileExists(t, filepath.Join(resultsDir, "summary.json"))
}

func TestRunContinuationExtendsMessage(t *testing.T) {
	b := fixtures.NewTranscriptBuilder().
		AddMessage("Alice", time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC), "first part").
		AddContinuation("and more words here").
		AddMessage("Alice", time.Date(2020, 1, 2, 11, 0, 0, 0, time.UTC), "next day")

	resultsDir := filepath.Join(t.TempDir(), "results")
	a := New(&Config{
		TranscriptPath: writeTranscript(t, b),
		ResultsDir:     resultsDir,
	})

	require.NoError(t, a.Run())

	// Day 0 holds all six tokens of the continued message; the
	// continuation must not open a new day entry.
	assert.Equal(t, "alice\t6\t2\n",
		readResult(t, resultsDir, "speaker_timeseries.txt"))
}

func TestRunRejectsOutOfRangeDates(t *testing.T) {
	// The trailing continuation hides the true last header from a naive
	// tail read but not from the backward scan, so dates stay in range.
	// A transcript whose middle message predates the first header must
	// fail instead.
	b := fixtures.NewTranscriptBuilder().
		AddMessage("Alice", time.Date(2020, 1, 5, 10, 0, 0, 0, time.UTC), "declared start").
		AddMessage("Bob", time.Date(2020, 1, 2, 10, 0, 0, 0, time.UTC), "out of range").
		AddMessage("Alice", time.Date(2020, 1, 6, 10, 0, 0, 0, time.UTC), "declared end")

	a := New(&Config{
		TranscriptPath: writeTranscript(t, b),
		ResultsDir:     filepath.Join(t.TempDir(), "results"),
	})

	err := a.Run()
	assert.ErrorIs(t, err, model.ErrDateRangeViolation)
}

func TestRunMalformedHeader(t *testing.T) {
	b := fixtures.NewTranscriptBuilder().
		AddRaw("[hangouts.py] not a timestamp <alice> hi")

	a := New(&Config{
		TranscriptPath: writeTranscript(t, b),
		ResultsDir:     filepath.Join(t.TempDir(), "results"),
	})

	assert.ErrorIs(t, a.Run(), model.ErrMalformedTimestamp)
}

func TestRunDeterministicReports(t *testing.T) {
	transcript := writeTranscript(t, fixtures.SimpleConversation().
		AddMessage("Alice", time.Date(2020, 1, 2, 12, 0, 0, 0, time.UTC), "hello world hello world").
		AddContinuation("don't stop now"))

	dirA := filepath.Join(t.TempDir(), "a")
	dirB := filepath.Join(t.TempDir(), "b")
	require.NoError(t, New(&Config{TranscriptPath: transcript, ResultsDir: dirA, Seed: 42}).Run())
	require.NoError(t, New(&Config{TranscriptPath: transcript, ResultsDir: dirB, Seed: 42}).Run())

	entries, err := os.ReadDir(dirA)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		assert.Equal(t,
			readResult(t, dirA, entry.Name()),
			readResult(t, dirB, entry.Name()),
			"rerun must be byte-identical: %s", entry.Name())
	}
}

func TestGenerateText(t *testing.T) {
	a := New(&Config{
		TranscriptPath: writeTranscript(t, fixtures.SimpleConversation()),
		ResultsDir:     t.TempDir(),
		Seed:           42,
	})

	sentences, err := a.GenerateText("alice", 3)
	require.NoError(t, err)
	require.Len(t, sentences, 3)
	for _, s := range sentences {
		assert.True(t, strings.HasPrefix(s, "Alice: "), s)
		assert.True(t, strings.HasSuffix(s, "."), s)
	}
}

func TestGenerateTextUnknownSpeaker(t *testing.T) {
	a := New(&Config{
		TranscriptPath: writeTranscript(t, fixtures.SimpleConversation()),
		ResultsDir:     t.TempDir(),
	})

	_, err := a.GenerateText("mallory", 1)
	assert.ErrorIs(t, err, model.ErrNoData)
}
