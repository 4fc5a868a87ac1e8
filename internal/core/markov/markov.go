// Package markov builds per-speaker trigram tables from tokenized messages
// and synthesizes sentences by a random walk over them. Transitions are
// sampled uniformly over distinct qualifying trigrams, never weighted by
// observed frequency; this trades corpus fidelity for variety in the
// generated text and is part of the output contract.
package markov

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/penwyp/go-chat-stats/internal/core/model"
)

// Sentence boundary sentinels. Two of each pad every message so that every
// walk starts at a BOS-leading trigram and reaches an EOS-ending one.
const (
	BOS = "BOS"
	EOS = "EOS"
)

// Model holds per-speaker trigram tables. It is populated during the scan
// and must be finalized before generation.
type Model struct {
	speakerTrigrams map[string]map[string]int
	speakerKeys     map[string][]string // sorted distinct trigrams, built by Finalize
	finalized       bool
}

// NewModel creates an empty Model.
func NewModel() *Model {
	return &Model{
		speakerTrigrams: make(map[string]map[string]int),
		speakerKeys:     make(map[string][]string),
	}
}

// Trigrams returns every contiguous length-3 window of the message after
// sentinel padding, joined on single spaces. A message of n tokens yields
// n+2 trigrams; even an empty message yields sentinel-only trigrams.
func Trigrams(tokens []string) []string {
	padded := make([]string, 0, len(tokens)+4)
	padded = append(padded, BOS, BOS)
	padded = append(padded, tokens...)
	padded = append(padded, EOS, EOS)

	trigrams := make([]string, 0, len(padded)-2)
	for i := 0; i+2 < len(padded); i++ {
		trigrams = append(trigrams, padded[i]+" "+padded[i+1]+" "+padded[i+2])
	}
	return trigrams
}

// Observe adds a message's trigrams to the speaker's table.
func (m *Model) Observe(speaker string, tokens []string) {
	table := m.speakerTrigrams[speaker]
	if table == nil {
		table = make(map[string]int)
		m.speakerTrigrams[speaker] = table
	}
	for _, t := range Trigrams(tokens) {
		table[t]++
	}
}

// TrigramCount returns the summed trigram occurrences for a speaker.
func (m *Model) TrigramCount(speaker string) int {
	total := 0
	for _, c := range m.speakerTrigrams[speaker] {
		total += c
	}
	return total
}

// Finalize freezes the model: each speaker's distinct trigrams are sorted
// so that seeded generation walks them in a reproducible order.
func (m *Model) Finalize() {
	for speaker, table := range m.speakerTrigrams {
		keys := make([]string, 0, len(table))
		for k := range table {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m.speakerKeys[speaker] = keys
	}
	m.finalized = true
}

// Generator performs the random walk. A zero seed selects a time-based
// source; any other seed makes generation reproducible.
type Generator struct {
	model *Model
	rng   *rand.Rand
}

// NewGenerator creates a Generator over a finalized model.
func NewGenerator(m *Model, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		model: m,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Generate synthesizes one sentence for the speaker: start from a uniformly
// chosen BOS-leading trigram, walk uniformly over trigrams whose first two
// tokens match the current last two, and stop when the walk reaches EOS.
func (g *Generator) Generate(speaker string) (string, error) {
	keys := g.model.speakerKeys[speaker]
	if !g.model.finalized || len(keys) == 0 {
		return "", fmt.Errorf("speaker %q: %w", speaker, model.ErrNoData)
	}

	var starts [][]string
	for _, k := range keys {
		parts := strings.Split(k, " ")
		if parts[0] == BOS {
			starts = append(starts, parts)
		}
	}
	if len(starts) == 0 {
		return "", fmt.Errorf("speaker %q has no sentence starts: %w", speaker, model.ErrNoData)
	}

	current := starts[g.rng.Intn(len(starts))]
	words := []string{current[0]}

	for current[2] != EOS {
		var choices [][]string
		for _, k := range keys {
			parts := strings.Split(k, " ")
			if parts[0] == current[1] && parts[1] == current[2] {
				choices = append(choices, parts)
			}
		}
		if len(choices) == 0 {
			return "", fmt.Errorf("speaker %q stuck after %q %q: %w",
				speaker, current[1], current[2], model.ErrDeadEnd)
		}
		current = choices[g.rng.Intn(len(choices))]
		words = append(words, current[0])
	}
	words = append(words, current[1], current[2])

	return renderSentence(speaker, words), nil
}

// renderSentence strips the sentinels, fixes first-person pronoun casing,
// terminates with a period, capitalizes the first letter, and prefixes the
// title-cased speaker name.
func renderSentence(speaker string, words []string) string {
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if w == BOS || w == EOS {
			continue
		}
		if w == "i" {
			w = "I"
		} else if strings.HasPrefix(w, "i'") {
			w = "I" + w[1:]
		}
		kept = append(kept, w)
	}

	sentence := strings.TrimSpace(strings.Join(kept, " ")) + "."
	sentence = capitalize(sentence)
	return titleCase(speaker) + ": " + sentence
}

// capitalize uppercases the first letter of s.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// titleCase capitalizes the first letter of every space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
