package formatter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-chat-stats/internal/util"
)

// JSONFormatter writes summary.json, the machine-readable counterpart of
// summary.txt.
type JSONFormatter struct {
	dir string
}

// JSONSummary is the serialized shape of the summary report.
type JSONSummary struct {
	TotalWords   int              `json:"totalWords"`
	ReadingHours float64          `json:"readingHours"`
	Speakers     []SpeakerSummary `json:"speakers"`
}

// SpeakerSummary holds one speaker's share of the corpus.
type SpeakerSummary struct {
	Name      string  `json:"name"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
	Diversity float64 `json:"diversity"`
}

// NewJSONFormatter creates a JSONFormatter writing into dir.
func NewJSONFormatter(dir string) *JSONFormatter {
	return &JSONFormatter{dir: dir}
}

// Write marshals the summary and writes it to summary.json.
func (f *JSONFormatter) Write(report *Report) error {
	freq := report.Frequencies

	summary := JSONSummary{
		TotalWords:   freq.OverallTotal,
		ReadingHours: util.Round2(report.ReadingHours()),
		Speakers:     make([]SpeakerSummary, 0, len(report.Speakers)),
	}
	for _, speaker := range report.SpeakersByTotal() {
		total := freq.SpeakerTotals[speaker]
		summary.Speakers = append(summary.Speakers, SpeakerSummary{
			Name:      speaker,
			Total:     total,
			Percent:   util.Round2(util.Percent(total, freq.OverallTotal)),
			Diversity: util.Round2(freq.Diversity[speaker]),
		})
	}

	data, err := sonic.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	path := filepath.Join(f.dir, "summary.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	util.LogDebug("Wrote summary.json")
	return nil
}
