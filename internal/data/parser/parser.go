// Package parser classifies transcript lines and assembles them into
// messages. A header line carries a timestamp and an angle-bracketed
// speaker; every other line continues the most recently opened message.
package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-chat-stats/internal/core/model"
	"github.com/penwyp/go-chat-stats/internal/core/token"
	"github.com/penwyp/go-chat-stats/internal/util"
)

// DefaultMarker is the literal prefix identifying a header line in
// transcripts produced by the Hangouts log extractor.
const DefaultMarker = "[hangouts.py]"

const timestampLayout = "2006-01-02 15:04:05"

// maxSpeakerWords caps a speaker name at its first three words.
const maxSpeakerWords = 3

var (
	timestampRE = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)
	speakerRE   = regexp.MustCompile(`<([^>]*)>`)
)

// Parser parses transcript lines for a fixed header marker.
type Parser struct {
	marker string
}

// NewParser creates a Parser. An empty marker selects DefaultMarker.
func NewParser(marker string) *Parser {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Parser{marker: strings.ToLower(marker)}
}

// IsHeader reports whether line opens a new message.
func (p *Parser) IsHeader(line string) bool {
	return strings.HasPrefix(strings.ToLower(line), p.marker)
}

// ParseHeader extracts the speaker, timestamp, and message text from a
// header line. The speaker is lowercased, trimmed, and truncated to its
// first three words.
func (p *Parser) ParseHeader(line string) (speaker string, ts time.Time, text string, err error) {
	lower := strings.ToLower(line)

	raw := timestampRE.FindString(lower)
	if raw == "" {
		return "", time.Time{}, "", fmt.Errorf("header %q: %w", line, model.ErrMalformedTimestamp)
	}
	ts, parseErr := time.Parse(timestampLayout, raw)
	if parseErr != nil {
		return "", time.Time{}, "", fmt.Errorf("header %q: %v: %w", line, parseErr, model.ErrMalformedTimestamp)
	}

	loc := speakerRE.FindStringSubmatchIndex(lower)
	if loc == nil {
		return "", time.Time{}, "", fmt.Errorf("header %q: no speaker: %w", line, model.ErrMalformedHeader)
	}
	speaker = normalizeSpeaker(lower[loc[2]:loc[3]])
	if speaker == "" {
		return "", time.Time{}, "", fmt.Errorf("header %q: empty speaker: %w", line, model.ErrMalformedHeader)
	}

	// Message text is whatever follows the closing bracket.
	text = strings.TrimPrefix(lower[loc[1]:], " ")
	return speaker, ts, text, nil
}

// normalizeSpeaker trims a raw speaker name and truncates it to its first
// three whitespace-separated words.
func normalizeSpeaker(name string) string {
	words := strings.Fields(strings.TrimSpace(name))
	if len(words) > maxSpeakerWords {
		words = words[:maxSpeakerWords]
	}
	return strings.Join(words, " ")
}

// Prescan derives the transcript facts needed to size every time-series
// table: the full speaker set and the calendar range. It must run before
// the main pass. The range spans the first header line and the last header
// line found scanning backward over any trailing continuation lines.
func (p *Parser) Prescan(lines []string) (model.TranscriptFacts, error) {
	seen := make(map[string]bool)
	firstHeader := -1
	lastHeader := -1

	for i, line := range lines {
		if !p.IsHeader(line) {
			continue
		}
		speaker, _, _, err := p.ParseHeader(line)
		if err != nil {
			return model.TranscriptFacts{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		seen[speaker] = true
		if firstHeader < 0 {
			firstHeader = i
		}
		lastHeader = i
	}

	if firstHeader < 0 {
		return model.TranscriptFacts{}, fmt.Errorf("transcript has no header lines: %w", model.ErrMalformedHeader)
	}

	_, firstTS, _, err := p.ParseHeader(lines[firstHeader])
	if err != nil {
		return model.TranscriptFacts{}, err
	}
	_, lastTS, _, err := p.ParseHeader(lines[lastHeader])
	if err != nil {
		return model.TranscriptFacts{}, err
	}

	speakers := make([]string, 0, len(seen))
	for s := range seen {
		speakers = append(speakers, s)
	}
	sort.Strings(speakers)

	facts := model.NewTranscriptFacts(speakers, firstTS, lastTS)
	util.LogDebug(fmt.Sprintf("Prescan: %d speakers, %d days (%s..%s)",
		len(speakers), facts.NDays+1,
		facts.FirstDate.Format("2006-01-02"), lastTS.Format("2006-01-02")))
	return facts, nil
}

// Messages assembles the transcript into ordered messages. Continuation
// lines extend the open message's token sequence and inherit its speaker
// and timestamp.
func (p *Parser) Messages(lines []string) ([]model.Message, error) {
	var messages []model.Message
	var current *model.Message

	for i, line := range lines {
		if p.IsHeader(line) {
			speaker, ts, text, err := p.ParseHeader(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			if current != nil {
				messages = append(messages, *current)
			}
			current = &model.Message{
				Speaker:   speaker,
				Timestamp: ts,
				Tokens:    token.Tokenize(text),
			}
			continue
		}

		if current == nil {
			return nil, fmt.Errorf("line %d: continuation before any header: %w", i+1, model.ErrMalformedHeader)
		}
		current.Tokens = append(current.Tokens, token.Tokenize(strings.ToLower(line))...)
	}

	if current != nil {
		messages = append(messages, *current)
	}

	util.LogDebug(fmt.Sprintf("Parsed %d messages from %d lines", len(messages), len(lines)))
	return messages, nil
}
