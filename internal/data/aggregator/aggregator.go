// Package aggregator maintains per-speaker and corpus-wide unigram and
// bigram tables over a single forward scan of the transcript.
package aggregator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/penwyp/go-chat-stats/internal/util"
)

var numericRE = regexp.MustCompile(`^\d+$`)

// Aggregator accumulates token counts during the scan. Counts only ever
// increase; Finalize produces the derived corpus-wide views.
type Aggregator struct {
	speakerWords   map[string]map[string]int
	speakerBigrams map[string]map[string]int
}

// Result holds the finalized aggregation output.
type Result struct {
	SpeakerWords   map[string]map[string]int
	SpeakerBigrams map[string]map[string]int
	SpeakerTotals  map[string]int
	OverallWords   map[string]int
	OverallBigrams map[string]int
	OverallTotal   int
	// Diversity is distinct-token count over total tokens per speaker,
	// defined as 0.0 for a speaker with no tokens.
	Diversity map[string]float64
}

// Entry is one (key, count) row of a frequency report.
type Entry struct {
	Key   string
	Count int
}

// New creates an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{
		speakerWords:   make(map[string]map[string]int),
		speakerBigrams: make(map[string]map[string]int),
	}
}

// Observe adds a message's tokens to the speaker's unigram table and its
// adjacent pairs to the speaker's bigram table. A message of fewer than two
// tokens contributes no bigrams.
func (a *Aggregator) Observe(speaker string, tokens []string) {
	words := a.speakerWords[speaker]
	if words == nil {
		words = make(map[string]int)
		a.speakerWords[speaker] = words
	}
	for _, t := range tokens {
		words[t]++
	}

	if len(tokens) < 2 {
		return
	}
	bigrams := a.speakerBigrams[speaker]
	if bigrams == nil {
		bigrams = make(map[string]int)
		a.speakerBigrams[speaker] = bigrams
	}
	for i := 0; i+1 < len(tokens); i++ {
		bigrams[tokens[i]+" "+tokens[i+1]]++
	}
}

// Finalize computes totals, corpus-wide tables, and lexical diversity.
// The aggregator must not be observed again afterwards.
func (a *Aggregator) Finalize() *Result {
	result := &Result{
		SpeakerWords:   a.speakerWords,
		SpeakerBigrams: a.speakerBigrams,
		SpeakerTotals:  make(map[string]int, len(a.speakerWords)),
		OverallWords:   make(map[string]int),
		OverallBigrams: make(map[string]int),
		Diversity:      make(map[string]float64, len(a.speakerWords)),
	}

	for speaker, words := range a.speakerWords {
		total := 0
		for w, c := range words {
			total += c
			result.OverallWords[w] += c
		}
		result.SpeakerTotals[speaker] = total
		result.OverallTotal += total

		if total == 0 {
			result.Diversity[speaker] = 0.0
		} else {
			result.Diversity[speaker] = float64(len(words)) / float64(total)
		}
	}

	for _, bigrams := range a.speakerBigrams {
		for b, c := range bigrams {
			result.OverallBigrams[b] += c
		}
	}

	util.LogDebug(fmt.Sprintf("Aggregated %d total tokens, %d distinct words, %d distinct bigrams",
		result.OverallTotal, len(result.OverallWords), len(result.OverallBigrams)))
	return result
}

// SortedEntries flattens a count table into rows sorted by descending
// count, ties broken alphabetically so report output is stable.
func SortedEntries(table map[string]int) []Entry {
	entries := make([]Entry, 0, len(table))
	for k, c := range table {
		entries = append(entries, Entry{Key: k, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// FilterWords keeps unigram report rows: count above one, not a stop word,
// not a purely numeric digit string.
func FilterWords(entries []Entry, stopWords map[string]bool) []Entry {
	var kept []Entry
	for _, e := range entries {
		if e.Count <= 1 {
			continue
		}
		if stopWords[e.Key] {
			continue
		}
		if numericRE.MatchString(e.Key) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// FilterBigrams keeps bigram report rows. Bigram reports filter on count
// alone; the stop-word and numeric filters apply only to unigrams.
func FilterBigrams(entries []Entry) []Entry {
	var kept []Entry
	for _, e := range entries {
		if e.Count > 1 {
			kept = append(kept, e)
		}
	}
	return kept
}

// DefaultStopWords is the stop list excluding function words and other
// high-frequency fillers from unigram frequency reports.
var DefaultStopWords = buildStopWords(
	"a", "about", "after", "again", "all", "also", "am", "an", "and",
	"another", "any", "are", "as", "at", "be", "because", "behind", "been",
	"being", "but", "by", "came", "can", "can't", "come", "could",
	"couldn't", "could've", "did", "didn't", "do", "does", "doesn't", "doing",
	"don't", "else", "even", "few", "for", "from", "get", "getting", "gets",
	"go", "goes", "going", "gonna", "good", "got", "had", "hadn't", "has",
	"hasn't", "have", "haven't", "having", "he", "he'd", "he'll", "he's",
	"her", "here", "hers", "him", "his", "how", "i", "i'd", "i'll", "if",
	"i'm", "in", "inside", "is", "isn't", "it", "it'd", "it'll", "it's", "its",
	"i've", "just", "know", "let's", "like", "me", "my", "naw", "no", "not",
	"now", "oh", "of", "off", "ok", "okay", "on", "one", "or", "our", "out",
	"outside", "really", "right", "she", "she'd", "she'll", "she's", "should",
	"that", "that'd", "that'll", "that's", "the", "their", "them", "then",
	"there", "they", "these", "those", "think", "this", "this'd", "this'll",
	"they're", "so", "some", "though", "to", "up", "us", "very", "was", "we",
	"well", "went", "we're", "were", "we've", "what", "what's", "what'd",
	"what'll", "when", "which", "while", "who", "why", "will", "with",
	"without", "would", "wouldn't", "would've", "yeah", "yes", "you", "you'd",
	"you'll", "your", "you're", "you've",
)

func buildStopWords(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}
