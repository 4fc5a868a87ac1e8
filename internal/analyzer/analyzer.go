// Package analyzer wires the pipeline together: read the transcript,
// prescan for speakers and date range, aggregate in a single forward pass,
// then finalize and write reports.
package analyzer

import (
	"fmt"
	"time"

	"github.com/penwyp/go-chat-stats/internal/core/markov"
	"github.com/penwyp/go-chat-stats/internal/core/model"
	"github.com/penwyp/go-chat-stats/internal/core/timeline"
	"github.com/penwyp/go-chat-stats/internal/data/aggregator"
	"github.com/penwyp/go-chat-stats/internal/data/parser"
	"github.com/penwyp/go-chat-stats/internal/data/reader"
	"github.com/penwyp/go-chat-stats/internal/presentation/formatter"
	"github.com/penwyp/go-chat-stats/internal/util"
)

// DefaultKeywords is the keyword list tracked in word_timeseries.txt when
// no --keywords override is given. Edit via flags, not here.
var DefaultKeywords = []string{"a", "b", "c"}

type Config struct {
	TranscriptPath string
	ResultsDir     string
	Marker         string
	Keywords       []string
	StopWords      map[string]bool
	Seed           int64
	ShowTable      bool
}

type Analyzer struct {
	config *Config
	parser *parser.Parser
}

func New(config *Config) *Analyzer {
	if len(config.Keywords) == 0 {
		config.Keywords = DefaultKeywords
	}
	if config.StopWords == nil {
		config.StopWords = aggregator.DefaultStopWords
	}
	return &Analyzer{
		config: config,
		parser: parser.NewParser(config.Marker),
	}
}

// Run executes the full pipeline and writes every report file into the
// results directory.
func (a *Analyzer) Run() error {
	startTime := time.Now()
	util.LogInfo("Starting transcript analysis...")

	agg, binner, _, facts, err := a.scan()
	if err != nil {
		return err
	}

	// Finalize tables.
	finalizeStart := time.Now()
	result := agg.Finalize()
	finalizeDuration := time.Since(finalizeStart)
	util.LogDebug(fmt.Sprintf("Phase 4 - Finalization duration: %v", finalizeDuration))

	// Write reports.
	outputStart := time.Now()
	report := &formatter.Report{
		Speakers:    facts.Speakers,
		Frequencies: result,
		StopWords:   a.config.StopWords,
		SpeakerRows: binner.SpeakerRows(),
		KeywordRows: binner.KeywordRows(),
		DayBuckets:  binner.DayBuckets(),
	}

	files := formatter.NewFileWriter(a.config.ResultsDir)
	if err := files.WriteAll(report); err != nil {
		return fmt.Errorf("failed to write reports: %w", err)
	}
	if err := formatter.NewJSONFormatter(a.config.ResultsDir).Write(report); err != nil {
		return fmt.Errorf("failed to write JSON summary: %w", err)
	}
	if a.config.ShowTable {
		formatter.NewTableFormatter().Print(report)
	}
	outputDuration := time.Since(outputStart)
	util.LogDebug(fmt.Sprintf("Phase 5 - Report output duration: %v", outputDuration))

	util.LogInfof("Analysis complete: %d words from %d speakers in %v",
		result.OverallTotal, len(facts.Speakers), time.Since(startTime))
	return nil
}

// GenerateText builds the trigram model from the transcript and synthesizes
// count sentences for the speaker. Generation failures leave no partial
// state behind; a different speaker may be retried.
func (a *Analyzer) GenerateText(speaker string, count int) ([]string, error) {
	_, _, chain, _, err := a.scan()
	if err != nil {
		return nil, err
	}

	gen := markov.NewGenerator(chain, a.config.Seed)
	sentences := make([]string, 0, count)
	for i := 0; i < count; i++ {
		sentence, err := gen.Generate(speaker)
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, sentence)
	}
	return sentences, nil
}

// scan runs the shared pipeline front: read, prescan, parse, and feed every
// message to the three consumers.
func (a *Analyzer) scan() (*aggregator.Aggregator, *timeline.Binner, *markov.Model, model.TranscriptFacts, error) {
	// Phase 1: Load the transcript into memory.
	readStart := time.Now()
	lines, err := reader.ReadLines(a.config.TranscriptPath)
	if err != nil {
		return nil, nil, nil, model.TranscriptFacts{}, err
	}
	util.LogDebug(fmt.Sprintf("Phase 1 - Transcript read duration: %v, %d lines", time.Since(readStart), len(lines)))

	// Phase 2: Prescan for the speaker set and date range. Table sizing
	// needs both before the main pass.
	prescanStart := time.Now()
	facts, err := a.parser.Prescan(lines)
	if err != nil {
		return nil, nil, nil, model.TranscriptFacts{}, err
	}
	util.LogDebug(fmt.Sprintf("Phase 2 - Prescan duration: %v, %d speakers, %d days",
		time.Since(prescanStart), len(facts.Speakers), facts.NDays+1))

	// Phase 3: Single forward pass feeding all three consumers.
	scanStart := time.Now()
	messages, err := a.parser.Messages(lines)
	if err != nil {
		return nil, nil, nil, model.TranscriptFacts{}, err
	}

	agg := aggregator.New()
	binner := timeline.NewBinner(facts, a.config.Keywords)
	chain := markov.NewModel()

	for _, msg := range messages {
		agg.Observe(msg.Speaker, msg.Tokens)
		if err := binner.Observe(msg.Speaker, msg.Timestamp, msg.Tokens); err != nil {
			return nil, nil, nil, model.TranscriptFacts{}, err
		}
		chain.Observe(msg.Speaker, msg.Tokens)
	}
	chain.Finalize()
	util.LogDebug(fmt.Sprintf("Phase 3 - Aggregation duration: %v, %d messages",
		time.Since(scanStart), len(messages)))

	return agg, binner, chain, facts, nil
}
