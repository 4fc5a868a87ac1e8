package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-chat-stats/internal/analyzer"
	"github.com/penwyp/go-chat-stats/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Transcript format
	marker string

	// Keyword timeseries configuration
	keywords     string
	keywordsFile string

	// Generation
	seed int64

	// Output related
	noTable bool

	rootCmd = &cobra.Command{
		Use:   "go-chat-stats TRANSCRIPT RESULTS_DIR",
		Short: "Chat transcript statistics tool",
		Long: `go-chat-stats computes descriptive statistics from a plaintext chat
transcript: word and bigram frequencies per speaker and overall, lexical
diversity, and per-day/per-time-of-day activity series.

Result files are written tab-separated into RESULTS_DIR, which is created
if missing.

Examples:
  go-chat-stats transcript.txt results/              # Full analysis
  go-chat-stats transcript.txt results/ --keywords cat,dog
  go-chat-stats transcript.txt results/ --debug
  go-chat-stats generate transcript.txt --speaker alice --count 3`,
		Args: cobra.ExactArgs(2),
		RunE: runAnalyze,
	}
)

const defaultLogFile = "~/.go-chat-stats/logs/app.log"

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&marker, "marker", "",
		"Header line marker prefix (default \"[hangouts.py]\")")

	rootCmd.Flags().StringVar(&keywords, "keywords", "",
		"Comma-separated keywords tracked in word_timeseries.txt")
	rootCmd.Flags().StringVar(&keywordsFile, "keywords-file", "",
		"JSON file holding an array of keywords (overrides --keywords)")
	rootCmd.Flags().Int64Var(&seed, "seed", 0,
		"Random seed for text generation (0 = time-based)")
	rootCmd.Flags().BoolVar(&noTable, "no-table", false,
		"Suppress the stdout summary table")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	initLogging()

	keywordList, err := resolveKeywords()
	if err != nil {
		return err
	}

	config := &analyzer.Config{
		TranscriptPath: expandPath(args[0]),
		ResultsDir:     expandPath(args[1]),
		Marker:         marker,
		Keywords:       keywordList,
		Seed:           seed,
		ShowTable:      !noTable,
	}

	return analyzer.New(config).Run()
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func initLogging() {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)
}

// resolveKeywords returns the keyword list from --keywords-file, then
// --keywords, then nil (the analyzer default).
func resolveKeywords() ([]string, error) {
	if keywordsFile != "" {
		data, err := os.ReadFile(expandPath(keywordsFile))
		if err != nil {
			return nil, fmt.Errorf("failed to read keywords file: %w", err)
		}
		var list []string
		if err := sonic.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("failed to parse keywords file %s: %w", keywordsFile, err)
		}
		return list, nil
	}
	if keywords != "" {
		var list []string
		for _, k := range strings.Split(keywords, ",") {
			if k = strings.TrimSpace(strings.ToLower(k)); k != "" {
				list = append(list, k)
			}
		}
		return list, nil
	}
	return nil, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
