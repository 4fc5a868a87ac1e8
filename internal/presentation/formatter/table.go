package formatter

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-chat-stats/internal/util"
	"golang.org/x/term"
)

// TableFormatter prints the summary statistics to stdout. Column padding
// uses display widths so speaker names in any script line up; rows are
// truncated to the terminal width when stdout is a terminal.
type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{"Speaker", "Words", "Share", "Diversity"},
	}
}

// Print renders the per-speaker summary table.
func (f *TableFormatter) Print(report *Report) {
	freq := report.Frequencies
	speakers := report.SpeakersByTotal()

	rows := make([][]string, 0, len(speakers)+1)
	for _, speaker := range speakers {
		total := freq.SpeakerTotals[speaker]
		rows = append(rows, []string{
			speaker,
			util.FormatNumber(total),
			fmt.Sprintf("%.2f%%", util.Percent(total, freq.OverallTotal)),
			fmt.Sprintf("%.2f", freq.Diversity[speaker]),
		})
	}
	rows = append(rows, []string{
		"TOTAL",
		util.FormatNumber(freq.OverallTotal),
		"100.00%",
		"",
	})

	widths := f.columnWidths(rows)
	maxLine := terminalWidth()

	fmt.Println(f.renderRow(f.headers, widths, maxLine))
	fmt.Println(f.renderSeparator(widths, maxLine))
	for _, row := range rows {
		fmt.Println(f.renderRow(row, widths, maxLine))
	}
	fmt.Printf("\nEstimated reading time: %s hours\n",
		util.FormatFloat(util.Round2(report.ReadingHours())))
}

func (f *TableFormatter) columnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, h := range f.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (f *TableFormatter) renderRow(cells []string, widths []int, maxLine int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = runewidth.FillRight(cell, widths[i])
	}
	return truncateLine(strings.TrimRight(strings.Join(padded, "  "), " "), maxLine)
}

func (f *TableFormatter) renderSeparator(widths []int, maxLine int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	return truncateLine(strings.Join(parts, "  "), maxLine)
}

// terminalWidth returns the stdout terminal width, or 0 when stdout is not
// a terminal (no truncation).
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

func truncateLine(line string, maxLine int) string {
	if maxLine <= 0 || runewidth.StringWidth(line) <= maxLine {
		return line
	}
	return runewidth.Truncate(line, maxLine, "…")
}
