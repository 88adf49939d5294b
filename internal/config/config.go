package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/regtext/lexindex/internal/lexicon"
)

// DefaultReferenceDate is the as-of date for age calculations when none is
// configured. Fixed rather than "now" so reruns over the same corpus
// produce identical age columns.
const DefaultReferenceDate = "2018-10-05"

type Config struct {
	// Input/output.
	CorpusPath  string
	OutputPath  string
	SummaryPath string // run metadata JSON; derived from OutputPath if empty

	// Cleaning.
	MinWords    int
	FilterShort bool
	LangCheck   bool

	// Scoring.
	ReferenceDate time.Time
	Concurrency   int
	MatchWords    bool

	// Audit matrices.
	KeepMatrix bool
	MatrixDir  string

	// Lexicon overrides, keyed by canonical lexicon name.
	LexiconPaths map[string]string

	// Report server.
	Port         string
	ResultsDir   string
	ReportAPIKey string
}

func Load() (Config, error) {
	refDate, err := time.Parse("2006-01-02", envOr("REFERENCE_DATE", DefaultReferenceDate))
	if err != nil {
		return Config{}, fmt.Errorf("REFERENCE_DATE: %w", err)
	}

	cfg := Config{
		CorpusPath:  envOr("CORPUS_PATH", "corpus.csv"),
		OutputPath:  envOr("OUTPUT_PATH", "out/summary.csv"),
		SummaryPath: os.Getenv("SUMMARY_PATH"),

		MinWords:    envInt("MIN_WORDS", 100),
		FilterShort: envBool("FILTER_SHORT", true),
		LangCheck:   envBool("LANG_CHECK", false),

		ReferenceDate: refDate,
		Concurrency:   envInt("CONCURRENCY", 4),
		MatchWords:    envBool("MATCH_WORDS", false),

		KeepMatrix: envBool("KEEP_MATRIX", false),
		MatrixDir:  envOr("MATRIX_DIR", "out/matrices"),

		LexiconPaths: lexiconPathsFromEnv(),

		Port:         envOr("PORT", "8091"),
		ResultsDir:   envOr("RESULTS_DIR", "out"),
		ReportAPIKey: os.Getenv("REPORTD_API_KEY"),
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.MinWords < 0 {
		cfg.MinWords = 0
	}
	if cfg.SummaryPath == "" {
		cfg.SummaryPath = cfg.OutputPath + ".run.json"
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.CorpusPath == "" {
		return fmt.Errorf("corpus path is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if c.ReferenceDate.IsZero() {
		return fmt.Errorf("reference date is required")
	}
	if c.KeepMatrix && c.MatrixDir == "" {
		return fmt.Errorf("matrix dir is required when matrices are kept")
	}
	return nil
}

// lexiconPathsFromEnv reads LEXICON_<NAME> overrides, e.g.
// LEXICON_PRESCRIPTIONS=/path/to/prescriptions.csv.
func lexiconPathsFromEnv() map[string]string {
	paths := make(map[string]string)
	for _, name := range lexicon.Names {
		key := "LEXICON_" + toEnvKey(name)
		if v := os.Getenv(key); v != "" {
			paths[name] = v
		}
	}
	return paths
}

func toEnvKey(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
