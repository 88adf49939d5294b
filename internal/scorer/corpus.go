package scorer

import (
	"context"
	"fmt"
	"time"

	"github.com/regtext/lexindex/internal/corpus"
	"github.com/regtext/lexindex/internal/lexicon"
)

// Result holds every derived metric for one document. Raw and Per100 are
// keyed by lexicon name; PerPhrase is populated only when the audit matrix
// is requested.
type Result struct {
	ID          string
	WordCount   int
	LastAmended time.Time

	Raw            map[string]int
	Per100         map[string]float64
	Prescriptivity float64
	AgeDays        int

	PerPhrase map[string][]int
}

// DivisionError indicates a document with word count 0 reached index
// normalization. Only reachable when short-document filtering is disabled.
type DivisionError struct {
	ID string
}

func (e *DivisionError) Error() string {
	return fmt.Sprintf("document %q: word count is 0, per-100-word index undefined", e.ID)
}

// Options controls corpus scoring.
type Options struct {
	Mode        Mode
	Concurrency int // documents scored at once; <=1 means sequential
	KeepMatrix  bool
	Reference   time.Time // as-of date for age calculation

	// Observe, when set, receives the scoring duration of each document.
	// Must be safe for concurrent use.
	Observe func(time.Duration)
}

// ScoreCorpus scores every document against every lexicon and fills in the
// derived columns. Documents are independent, so they are fanned out over
// a bounded number of goroutines; results land at the document's input
// index, keeping output order deterministic regardless of scheduling.
func ScoreCorpus(ctx context.Context, docs []corpus.Document, lexicons []lexicon.Lexicon, opts Options) ([]Result, error) {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	results := make([]Result, len(docs))
	errs := make([]error, len(docs))
	sem := make(chan struct{}, opts.Concurrency)
	done := make(chan int, len(docs))

	for i := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}
		go func(i int) {
			defer func() { <-sem }()
			start := time.Now()
			results[i], errs[i] = scoreDocument(docs[i], lexicons, opts)
			if opts.Observe != nil {
				opts.Observe(time.Since(start))
			}
			done <- i
		}(i)
	}

	for range docs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-done:
		}
	}

	// Fail fast on the first document that could not be scored.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func scoreDocument(doc corpus.Document, lexicons []lexicon.Lexicon, opts Options) (Result, error) {
	if doc.WordCount == 0 {
		return Result{}, &DivisionError{ID: doc.ID}
	}

	res := Result{
		ID:          doc.ID,
		WordCount:   doc.WordCount,
		LastAmended: doc.LastAmended,
		Raw:         make(map[string]int, len(lexicons)),
		Per100:      make(map[string]float64, len(lexicons)),
		AgeDays:     doc.AgeDays(opts.Reference),
	}
	if opts.KeepMatrix {
		res.PerPhrase = make(map[string][]int, len(lexicons))
	}

	for _, lex := range lexicons {
		perPhrase, raw := Count(doc.Text, lex, opts.Mode)
		res.Raw[lex.Name] = raw
		res.Per100[lex.Name] = Index(raw, doc.WordCount)
		if opts.KeepMatrix {
			res.PerPhrase[lex.Name] = perPhrase
		}
	}

	res.Prescriptivity = PrescriptivityScore(res.Raw["prescriptions"], res.Raw["permissions"], doc.WordCount)
	return res, nil
}
