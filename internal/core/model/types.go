package model

import (
	"errors"
	"time"
)

// Sentinel errors for the analysis pipeline. Callers wrap these with
// fmt.Errorf("...: %w", ...) to attach line and speaker context.
var (
	// ErrMalformedTimestamp indicates a header line without a parseable
	// YYYY-MM-DD HH:MM:SS timestamp.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrMalformedHeader indicates a header line without an angle-bracketed
	// speaker name after the timestamp.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrDateRangeViolation indicates a message whose date falls outside the
	// range declared by the transcript's first and last header lines.
	ErrDateRangeViolation = errors.New("date outside transcript range")

	// ErrNoData indicates a text generation request for a speaker with no
	// observed trigrams.
	ErrNoData = errors.New("no trigram data for speaker")

	// ErrDeadEnd indicates a trigram state with no outgoing transitions.
	// A sentinel-terminated table should never produce one.
	ErrDeadEnd = errors.New("trigram chain dead end")
)

// Message is one logical transcript message. Continuation lines extend the
// token sequence of the most recently opened Message and inherit its speaker
// and timestamp.
type Message struct {
	Speaker   string
	Timestamp time.Time
	Tokens    []string
}

// TranscriptFacts holds the immutable facts derived from the prescan pass:
// the full participant set and the calendar range. Time-series table sizing
// depends on both, so the prescan must complete before the main aggregation
// pass starts.
type TranscriptFacts struct {
	Speakers     []string       // sorted, lowercased
	SpeakerIndex map[string]int // speaker -> row index
	FirstDate    time.Time      // midnight of the first header's date
	NDays        int            // last date minus first date, in days
}

// NewTranscriptFacts builds facts from an already-sorted speaker list and
// the transcript's calendar bounds.
func NewTranscriptFacts(speakers []string, firstDate, lastDate time.Time) TranscriptFacts {
	index := make(map[string]int, len(speakers))
	for i, s := range speakers {
		index[s] = i
	}
	first := Midnight(firstDate)
	last := Midnight(lastDate)
	return TranscriptFacts{
		Speakers:     speakers,
		SpeakerIndex: index,
		FirstDate:    first,
		NDays:        int(last.Sub(first).Hours() / 24),
	}
}

// DayIndex returns the zero-based day offset of ts from the first date.
// The result is only meaningful in [0, NDays]; callers must range-check and
// report ErrDateRangeViolation otherwise.
func (f TranscriptFacts) DayIndex(ts time.Time) int {
	return int(Midnight(ts).Sub(f.FirstDate).Hours() / 24)
}

// Midnight truncates a timestamp to the start of its calendar day.
func Midnight(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}
