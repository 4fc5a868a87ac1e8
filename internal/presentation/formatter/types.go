package formatter

import (
	"sort"

	"github.com/penwyp/go-chat-stats/internal/core/timeline"
	"github.com/penwyp/go-chat-stats/internal/data/aggregator"
)

// Report bundles everything the report writers consume: the finalized
// frequency tables plus the binned time series.
type Report struct {
	Speakers    []string // sorted, lowercased
	Frequencies *aggregator.Result
	StopWords   map[string]bool
	SpeakerRows []timeline.Row
	KeywordRows []timeline.Row
	DayBuckets  []int
}

// WordsPerMinute is the assumed reading speed for the time-to-read
// estimate.
const WordsPerMinute = 250

// ReadingHours estimates how long the corpus takes to read.
func (r *Report) ReadingHours() float64 {
	return float64(r.Frequencies.OverallTotal) / WordsPerMinute / 60
}

// SpeakersByTotal returns the speakers ordered by descending word total,
// ties broken alphabetically.
func (r *Report) SpeakersByTotal() []string {
	speakers := make([]string, len(r.Speakers))
	copy(speakers, r.Speakers)
	totals := r.Frequencies.SpeakerTotals
	sort.SliceStable(speakers, func(i, j int) bool {
		if totals[speakers[i]] != totals[speakers[j]] {
			return totals[speakers[i]] > totals[speakers[j]]
		}
		return speakers[i] < speakers[j]
	})
	return speakers
}
