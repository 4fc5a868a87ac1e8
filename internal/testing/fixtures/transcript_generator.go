// Package fixtures builds plaintext transcripts for tests.
package fixtures

import (
	"os"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// TranscriptBuilder assembles transcript lines in order. The zero marker
// is the Hangouts extractor prefix.
type TranscriptBuilder struct {
	marker string
	lines  []string
}

// NewTranscriptBuilder creates a builder with the default header marker.
func NewTranscriptBuilder() *TranscriptBuilder {
	return &TranscriptBuilder{marker: "[hangouts.py]"}
}

// WithMarker overrides the header marker.
func (b *TranscriptBuilder) WithMarker(marker string) *TranscriptBuilder {
	b.marker = marker
	return b
}

// AddMessage appends a header line for speaker at ts with the given text.
func (b *TranscriptBuilder) AddMessage(speaker string, ts time.Time, text string) *TranscriptBuilder {
	b.lines = append(b.lines,
		b.marker+" "+ts.Format(timestampLayout)+" <"+speaker+"> "+text)
	return b
}

// AddContinuation appends a continuation line extending the previous
// message.
func (b *TranscriptBuilder) AddContinuation(text string) *TranscriptBuilder {
	b.lines = append(b.lines, text)
	return b
}

// AddRaw appends an arbitrary line verbatim.
func (b *TranscriptBuilder) AddRaw(line string) *TranscriptBuilder {
	b.lines = append(b.lines, line)
	return b
}

// Lines returns the assembled transcript lines.
func (b *TranscriptBuilder) Lines() []string {
	return b.lines
}

// WriteFile writes the transcript to path.
func (b *TranscriptBuilder) WriteFile(path string) error {
	return os.WriteFile(path, []byte(strings.Join(b.lines, "\n")+"\n"), 0644)
}

// SimpleConversation returns a small two-speaker transcript spanning two
// days, used by pipeline-level tests.
func SimpleConversation() *TranscriptBuilder {
	return NewTranscriptBuilder().
		AddMessage("Alice", time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC), "Hello world!").
		AddMessage("Bob", time.Date(2020, 1, 2, 10, 5, 0, 0, time.UTC), "hello there world")
}
