package scorer

import (
	"regexp"
	"strings"

	"github.com/regtext/lexindex/internal/lexicon"
)

// Mode selects how phrases are matched against document text.
type Mode int

const (
	// MatchSubstring counts literal substring occurrences anywhere in the
	// text, including inside longer words ("may" hits inside "maybe").
	// This over-counts short phrases, but it is the behavior the published
	// indices were built on, so it stays the default. Use MatchWords for
	// boundary-aware counting; never swap the default silently.
	MatchSubstring Mode = iota

	// MatchWords counts occurrences only at word boundaries.
	MatchWords
)

// Count scores one document's text against one lexicon. It returns the
// per-phrase occurrence counts (in lexicon order) and their sum, the
// lexicon's raw score for the document. Text is expected lowercased;
// phrases are lowercased defensively so counting stays case-insensitive
// either way.
func Count(text string, lex lexicon.Lexicon, mode Mode) ([]int, int) {
	perPhrase := make([]int, len(lex.Phrases))
	raw := 0
	for i, phrase := range lex.Phrases {
		phrase = strings.ToLower(phrase)
		var n int
		switch mode {
		case MatchWords:
			n = countWords(text, phrase)
		default:
			n = strings.Count(text, phrase)
		}
		perPhrase[i] = n
		raw += n
	}
	return perPhrase, raw
}

func countWords(text, phrase string) int {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
	if err != nil {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}

// Index normalizes a raw count to occurrences per 100 words. The result is
// non-finite when wordCount is 0; the cleaner's filtering invariant keeps
// that case out of the pipeline unless filtering was disabled, and the
// pipeline aborts on it rather than exporting Inf.
func Index(raw, wordCount int) float64 {
	return float64(raw) / (float64(wordCount) / 100)
}

// PrescriptivityScore is the smoothed ratio of the prescriptions index to
// the permissions index. The +1/+2 constants avoid division by zero when
// either raw count is 0 and are fixed — changing them breaks numeric
// parity with previously published results. When both raw counts are 0 the
// score is exactly 1.
func PrescriptivityScore(presRaw, permRaw, wordCount int) float64 {
	denom := (float64(wordCount) + 2) / 100
	pres := (float64(presRaw) + 1) / denom
	perm := (float64(permRaw) + 1) / denom
	return pres / perm
}
