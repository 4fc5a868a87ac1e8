// Package reader loads a transcript file into memory. The whole pipeline
// operates on a bounded, memory-resident line sequence, so the reader
// returns every line up front rather than streaming.
package reader

import (
	"bufio"
	"fmt"
	"os"

	"github.com/penwyp/go-chat-stats/internal/util"
)

// maxLineSize bounds a single transcript line. Chat messages are short, but
// pasted content can be large.
const maxLineSize = 10 * 1024 * 1024

// ReadLines reads the UTF-8 transcript at path and returns its lines in
// order, without trailing newlines.
func ReadLines(path string) ([]string, error) {
	util.LogDebug(fmt.Sprintf("Reading transcript: %s", path))

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript %s: %w", path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript %s: %w", path, err)
	}

	util.LogDebug(fmt.Sprintf("Read %d lines from %s", len(lines), path))
	return lines, nil
}
