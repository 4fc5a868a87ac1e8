// Package timeline bins message activity over the transcript's calendar
// range: token counts per speaker per day, keyword occurrences per day, and
// token counts per 10-minute bucket of the 24-hour clock.
package timeline

import (
	"fmt"
	"time"

	"github.com/penwyp/go-chat-stats/internal/core/model"
)

const (
	// BucketMinutes is the width of a time-of-day bucket.
	BucketMinutes = 10
	// NumBuckets is the number of time-of-day buckets in a day.
	NumBuckets = 24 * 60 / BucketMinutes
)

// Row is one labeled series of per-day counts.
type Row struct {
	Label  string
	Counts []int
}

// Binner accumulates the three time series. Its tables are sized up front
// from the prescan facts and never grow.
type Binner struct {
	facts         model.TranscriptFacts
	keywords      []string
	keywordIndex  map[string]int
	speakerSeries [][]int // speakers x (NDays+1)
	keywordSeries [][]int // keywords x (NDays+1)
	daySeries     []int   // NumBuckets
}

// NewBinner creates a Binner for the given transcript facts and keyword
// list. Keyword order is preserved in the output rows.
func NewBinner(facts model.TranscriptFacts, keywords []string) *Binner {
	days := facts.NDays + 1

	speakerSeries := make([][]int, len(facts.Speakers))
	for i := range speakerSeries {
		speakerSeries[i] = make([]int, days)
	}

	keywordIndex := make(map[string]int, len(keywords))
	keywordSeries := make([][]int, len(keywords))
	for i, k := range keywords {
		keywordIndex[k] = i
		keywordSeries[i] = make([]int, days)
	}

	return &Binner{
		facts:         facts,
		keywords:      keywords,
		keywordIndex:  keywordIndex,
		speakerSeries: speakerSeries,
		keywordSeries: keywordSeries,
		daySeries:     make([]int, NumBuckets),
	}
}

// Bucket maps a timestamp's time of day to its 10-minute bucket in
// [0, NumBuckets).
func Bucket(ts time.Time) int {
	return (ts.Hour()*60 + ts.Minute()) / BucketMinutes
}

// Observe bins one message: the speaker's day count and the time-of-day
// bucket grow by the token count, and each keyword token increments its
// day count. A date outside the declared range fails.
func (b *Binner) Observe(speaker string, ts time.Time, tokens []string) error {
	day := b.facts.DayIndex(ts)
	if day < 0 || day > b.facts.NDays {
		return fmt.Errorf("message at %s has day index %d outside [0, %d]: %w",
			ts.Format("2006-01-02 15:04:05"), day, b.facts.NDays, model.ErrDateRangeViolation)
	}

	row, ok := b.facts.SpeakerIndex[speaker]
	if !ok {
		return fmt.Errorf("speaker %q missing from prescan speaker set", speaker)
	}

	b.speakerSeries[row][day] += len(tokens)
	b.daySeries[Bucket(ts)] += len(tokens)

	for _, t := range tokens {
		if i, ok := b.keywordIndex[t]; ok {
			b.keywordSeries[i][day]++
		}
	}
	return nil
}

// SpeakerRows returns the per-speaker day series in speaker-sorted order.
func (b *Binner) SpeakerRows() []Row {
	rows := make([]Row, len(b.facts.Speakers))
	for i, s := range b.facts.Speakers {
		rows[i] = Row{Label: s, Counts: b.speakerSeries[i]}
	}
	return rows
}

// KeywordRows returns the per-keyword day series in configured order.
func (b *Binner) KeywordRows() []Row {
	rows := make([]Row, len(b.keywords))
	for i, k := range b.keywords {
		rows[i] = Row{Label: k, Counts: b.keywordSeries[i]}
	}
	return rows
}

// DayBuckets returns token counts per time-of-day bucket.
func (b *Binner) DayBuckets() []int {
	return b.daySeries
}

// TotalTokens sums every time-of-day bucket. It equals the corpus total
// token count after a full scan.
func (b *Binner) TotalTokens() int {
	total := 0
	for _, c := range b.daySeries {
		total += c
	}
	return total
}
