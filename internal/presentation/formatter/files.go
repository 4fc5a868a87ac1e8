// Report files are tab-separated UTF-8, one row per line, written with a
// plain buffered writer: the format uses single literal tabs with no
// quoting, so encoding/csv's quoting rules would change the bytes.
package formatter

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/penwyp/go-chat-stats/internal/core/timeline"
	"github.com/penwyp/go-chat-stats/internal/data/aggregator"
	"github.com/penwyp/go-chat-stats/internal/util"
)

// FileWriter writes the tab-separated report files into a results
// directory, creating it if needed.
type FileWriter struct {
	dir string
}

// NewFileWriter creates a FileWriter for dir.
func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{dir: dir}
}

// WriteAll writes every report file. Output is deterministic: equal counts
// order alphabetically, so identical inputs produce identical bytes.
func (f *FileWriter) WriteAll(report *Report) error {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("failed to create results dir %s: %w", f.dir, err)
	}

	writers := []struct {
		name string
		fn   func(*bufio.Writer, *Report) error
	}{
		{"summary.txt", writeSummary},
		{"words.txt", writeWords},
		{"overall_word_frequencies.txt", writeOverallWordFrequencies},
		{"speaker_word_frequencies.txt", writeSpeakerWordFrequencies},
		{"overall_bigram_frequencies.txt", writeOverallBigramFrequencies},
		{"speaker_bigram_frequencies.txt", writeSpeakerBigramFrequencies},
		{"speaker_timeseries.txt", writeSpeakerTimeseries},
		{"word_timeseries.txt", writeWordTimeseries},
		{"day_timeseries.txt", writeDayTimeseries},
	}

	for _, w := range writers {
		if err := f.writeFile(w.name, report, w.fn); err != nil {
			return err
		}
		util.LogDebug(fmt.Sprintf("Wrote %s", w.name))
	}
	return nil
}

func (f *FileWriter) writeFile(name string, report *Report, fn func(*bufio.Writer, *Report) error) error {
	path := filepath.Join(f.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := fn(w, report); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return w.Flush()
}

func writeSummary(w *bufio.Writer, r *Report) error {
	freq := r.Frequencies

	fmt.Fprintf(w, "GENERAL\n-------\n")
	fmt.Fprintf(w, "total length: %d words\ntime to read: %s hours\n\n",
		freq.OverallTotal, util.FormatFloat(util.Round2(r.ReadingHours())))

	fmt.Fprintf(w, "WORDS\n-----\n")
	for _, speaker := range r.SpeakersByTotal() {
		total := freq.SpeakerTotals[speaker]
		fmt.Fprintf(w, "%s\t%d\t%s%%\n", speaker, total,
			util.FormatFloat(util.Round2(util.Percent(total, freq.OverallTotal))))
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "LEXICAL DIVERSITY\n-----------------\n")
	for _, speaker := range r.Speakers {
		fmt.Fprintf(w, "%s\t%s\n", speaker,
			util.FormatFloat(util.Round2(freq.Diversity[speaker])))
	}
	return nil
}

func writeWords(w *bufio.Writer, r *Report) error {
	for _, speaker := range r.Speakers {
		for _, e := range aggregator.SortedEntries(r.Frequencies.SpeakerWords[speaker]) {
			fmt.Fprintf(w, "%s\t%s\n", speaker, e.Key)
		}
	}
	return nil
}

func writeOverallWordFrequencies(w *bufio.Writer, r *Report) error {
	freq := r.Frequencies
	entries := aggregator.FilterWords(aggregator.SortedEntries(freq.OverallWords), r.StopWords)
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\n", e.Key, e.Count,
			util.FormatFloat(util.Round3(util.Percent(e.Count, freq.OverallTotal))))
	}
	return nil
}

func writeSpeakerWordFrequencies(w *bufio.Writer, r *Report) error {
	freq := r.Frequencies
	for _, speaker := range r.Speakers {
		entries := aggregator.FilterWords(aggregator.SortedEntries(freq.SpeakerWords[speaker]), r.StopWords)
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", speaker, e.Key, e.Count,
				util.FormatFloat(util.Round3(util.Percent(e.Count, freq.SpeakerTotals[speaker]))))
		}
	}
	return nil
}

func writeOverallBigramFrequencies(w *bufio.Writer, r *Report) error {
	freq := r.Frequencies
	entries := aggregator.FilterBigrams(aggregator.SortedEntries(freq.OverallBigrams))
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\n", e.Key, e.Count,
			util.FormatFloat(util.Round3(util.Percent(e.Count, freq.OverallTotal))))
	}
	return nil
}

func writeSpeakerBigramFrequencies(w *bufio.Writer, r *Report) error {
	freq := r.Frequencies
	for _, speaker := range r.Speakers {
		entries := aggregator.FilterBigrams(aggregator.SortedEntries(freq.SpeakerBigrams[speaker]))
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", speaker, e.Key, e.Count,
				util.FormatFloat(util.Round3(util.Percent(e.Count, freq.SpeakerTotals[speaker]))))
		}
	}
	return nil
}

func writeSpeakerTimeseries(w *bufio.Writer, r *Report) error {
	return writeRows(w, r.SpeakerRows)
}

func writeWordTimeseries(w *bufio.Writer, r *Report) error {
	return writeRows(w, r.KeywordRows)
}

func writeDayTimeseries(w *bufio.Writer, r *Report) error {
	for _, count := range r.DayBuckets {
		fmt.Fprintf(w, "%d\n", count)
	}
	return nil
}

func writeRows(w *bufio.Writer, rows []timeline.Row) error {
	for _, row := range rows {
		if _, err := w.WriteString(row.Label); err != nil {
			return err
		}
		for _, count := range row.Counts {
			fmt.Fprintf(w, "\t%d", count)
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}
