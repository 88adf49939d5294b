package corpus

import (
	"log/slog"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
)

// CleanOptions controls corpus filtering and normalization.
type CleanOptions struct {
	// MinWords drops documents shorter than this many words when
	// FilterShort is set. Short fragments (repealed stubs, headings saved
	// as standalone records) distort per-100-word indices.
	MinWords    int
	FilterShort bool

	// LangCheck runs language detection over each surviving document and
	// logs a warning for text that does not look like English. Diagnostic
	// only: nothing is filtered on language.
	LangCheck bool
}

// DefaultCleanOptions returns the filtering defaults used by the pipeline.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		MinWords:    100,
		FilterShort: true,
	}
}

// Clean filters and normalizes a loaded corpus: repealed documents are
// dropped, short documents are dropped when the filter is on, text is
// case-folded, and last-amended dates are parsed into calendar dates.
// Clean is idempotent — running it over already-cleaned documents returns
// the same set.
//
// After a successful Clean every surviving document has WordCount > 0 and
// Repealed == false; downstream index normalization relies on this.
func Clean(docs []Document, opts CleanOptions, log *slog.Logger) ([]Document, error) {
	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if doc.Repealed {
			continue
		}
		if opts.FilterShort && doc.WordCount < opts.MinWords {
			continue
		}

		amended, err := parseDate(doc.RawDate)
		if err != nil {
			return nil, &DateError{ID: doc.ID, Value: doc.RawDate}
		}
		doc.LastAmended = amended
		doc.RawDate = amended.Format("2006-01-02")
		doc.Text = strings.ToLower(doc.Text)

		if opts.LangCheck && log != nil {
			info := whatlanggo.Detect(doc.Text)
			if info.IsReliable() && info.Lang != whatlanggo.Eng {
				log.Warn("document does not look like English",
					"doc_id", doc.ID,
					"lang", whatlanggo.LangToString(info.Lang),
					"confidence", info.Confidence,
				)
			}
		}

		out = append(out, doc)
	}
	return out, nil
}

// dateLayouts are the forms seen in source tables, most common first.
// "2006-1-2" also accepts zero-padded components, so canonical dates
// round-trip through parseDate unchanged.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"2 January 2006",
	"January 2, 2006",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
