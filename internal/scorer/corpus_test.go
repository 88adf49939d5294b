package scorer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/regtext/lexindex/internal/corpus"
	"github.com/regtext/lexindex/internal/lexicon"
)

func scenarioLexicons() []lexicon.Lexicon {
	return []lexicon.Lexicon{
		{Name: "prescriptions", Phrases: []string{"shall"}},
		{Name: "permissions", Phrases: []string{"may"}},
	}
}

func TestScoreCorpus_EndToEndScenario(t *testing.T) {
	docs := []corpus.Document{{
		ID:          "reg-001",
		Text:        "the licensee shall comply. the licensee may apply for exemption.",
		WordCount:   10,
		LastAmended: time.Date(2018, 1, 5, 0, 0, 0, 0, time.UTC),
	}}

	results, err := ScoreCorpus(context.Background(), docs, scenarioLexicons(), Options{
		Reference: time.Date(2018, 10, 5, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	res := results[0]
	if res.Raw["prescriptions"] != 1 {
		t.Errorf("expected prescriptions raw 1, got %d", res.Raw["prescriptions"])
	}
	if res.Raw["permissions"] != 1 {
		t.Errorf("expected permissions raw 1, got %d", res.Raw["permissions"])
	}
	if res.Per100["prescriptions"] != 10 {
		t.Errorf("expected prescriptions index 10, got %v", res.Per100["prescriptions"])
	}
	if res.Per100["permissions"] != 10 {
		t.Errorf("expected permissions index 10, got %v", res.Per100["permissions"])
	}
	if res.Prescriptivity != 1.0 {
		t.Errorf("expected prescriptivity score 1.0, got %v", res.Prescriptivity)
	}
	if res.AgeDays != 273 {
		t.Errorf("expected age 273 days, got %d", res.AgeDays)
	}
}

func TestScoreCorpus_PreservesInputOrder(t *testing.T) {
	var docs []corpus.Document
	for i := 0; i < 50; i++ {
		docs = append(docs, corpus.Document{
			ID:          fmt.Sprintf("reg-%03d", i),
			Text:        "the licensee shall comply",
			WordCount:   5,
			LastAmended: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
		})
	}

	results, err := ScoreCorpus(context.Background(), docs, scenarioLexicons(), Options{
		Concurrency: 8,
		Reference:   time.Date(2018, 10, 5, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, res := range results {
		want := fmt.Sprintf("reg-%03d", i)
		if res.ID != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, res.ID)
		}
	}
}

func TestScoreCorpus_ZeroWordCountAborts(t *testing.T) {
	docs := []corpus.Document{{ID: "empty", Text: "", WordCount: 0}}
	_, err := ScoreCorpus(context.Background(), docs, scenarioLexicons(), Options{})
	if err == nil {
		t.Fatal("expected error for word count 0")
	}
	var de *DivisionError
	if !errors.As(err, &de) {
		t.Fatalf("expected DivisionError, got %T: %v", err, err)
	}
	if de.ID != "empty" {
		t.Errorf("expected error naming the document, got %q", de.ID)
	}
}

func TestScoreCorpus_KeepMatrix(t *testing.T) {
	docs := []corpus.Document{{
		ID:          "reg-001",
		Text:        "you may maybe go",
		WordCount:   4,
		LastAmended: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
	}}

	results, err := ScoreCorpus(context.Background(), docs, scenarioLexicons(), Options{KeepMatrix: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	counts := results[0].PerPhrase["permissions"]
	if len(counts) != 1 || counts[0] != 2 {
		t.Errorf("expected per-phrase matrix [2] for permissions, got %v", counts)
	}
}

func TestScoreCorpus_ObserveCalledPerDocument(t *testing.T) {
	docs := []corpus.Document{
		{ID: "a", Text: "shall", WordCount: 1},
		{ID: "b", Text: "may", WordCount: 1},
	}
	var calls atomic.Int64
	_, err := ScoreCorpus(context.Background(), docs, scenarioLexicons(), Options{
		Concurrency: 2,
		Observe:     func(time.Duration) { calls.Add(1) },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 observations, got %d", calls.Load())
	}
}

func TestScoreCorpus_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs := []corpus.Document{{ID: "a", Text: "shall", WordCount: 1}}
	_, err := ScoreCorpus(ctx, docs, scenarioLexicons(), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
