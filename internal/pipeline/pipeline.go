package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/regtext/lexindex/internal/config"
	"github.com/regtext/lexindex/internal/corpus"
	"github.com/regtext/lexindex/internal/export"
	"github.com/regtext/lexindex/internal/lexicon"
	"github.com/regtext/lexindex/internal/scorer"
)

// Pipeline runs the full analysis: load, clean, score, export. One
// invocation, fail fast — a bad document aborts the run rather than
// producing a summary over a silently reduced corpus.
type Pipeline struct {
	cfg config.Config
	log *slog.Logger
}

func New(cfg config.Config, log *slog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log}
}

// Execute runs the pipeline to completion. The run summary JSON is written
// even when the run fails, with the failure recorded, so aborted runs stay
// diagnosable.
func (p *Pipeline) Execute(ctx context.Context) (*Run, error) {
	run := NewRun()
	log := p.log.With("run_id", run.ID)

	err := p.execute(ctx, run, log)
	if err != nil {
		run.AddError(err.Error())
	}
	run.Finish()

	if werr := run.WriteFile(p.cfg.SummaryPath); werr != nil {
		log.Error("run summary write failed", "error", werr)
		if err == nil {
			err = werr
		}
	}
	return run, err
}

func (p *Pipeline) execute(ctx context.Context, run *Run, log *slog.Logger) error {
	// Stage 1: load.
	start := time.Now()
	docs, err := corpus.LoadFile(p.cfg.CorpusPath)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	run.StageDone("load", time.Since(start))
	log.Info("corpus loaded", "documents", len(docs))

	// Stage 2: clean.
	start = time.Now()
	cleaned, err := corpus.Clean(docs, corpus.CleanOptions{
		MinWords:    p.cfg.MinWords,
		FilterShort: p.cfg.FilterShort,
		LangCheck:   p.cfg.LangCheck,
	}, log)
	if err != nil {
		return fmt.Errorf("clean corpus: %w", err)
	}
	run.StageDone("clean", time.Since(start))
	run.SetCounts(len(docs), len(cleaned))
	log.Info("corpus cleaned", "kept", len(cleaned), "dropped", len(docs)-len(cleaned))

	// Stage 3: lexicons.
	start = time.Now()
	lexicons, err := lexicon.LoadSet(p.cfg.LexiconPaths)
	if err != nil {
		return fmt.Errorf("load lexicons: %w", err)
	}
	run.StageDone("lexicons", time.Since(start))

	// Stage 4: score.
	start = time.Now()
	stats := NewDurationStats()
	mode := scorer.MatchSubstring
	if p.cfg.MatchWords {
		mode = scorer.MatchWords
	}
	results, err := scorer.ScoreCorpus(ctx, cleaned, lexicons, scorer.Options{
		Mode:        mode,
		Concurrency: p.cfg.Concurrency,
		KeepMatrix:  p.cfg.KeepMatrix,
		Reference:   p.cfg.ReferenceDate,
		Observe: func(d time.Duration) {
			stats.Record(d.Milliseconds())
		},
	})
	if err != nil {
		return fmt.Errorf("score corpus: %w", err)
	}
	run.StageDone("score", time.Since(start))
	run.SetScoreStats(stats.Snapshot())
	log.Info("corpus scored", "documents", len(results), "lexicons", len(lexicons))

	// Stage 5: export.
	start = time.Now()
	if err := export.WriteSummaryFile(p.cfg.OutputPath, results); err != nil {
		return fmt.Errorf("export summary: %w", err)
	}
	if p.cfg.KeepMatrix {
		if err := export.WriteMatrices(p.cfg.MatrixDir, lexicons, results); err != nil {
			return fmt.Errorf("export matrices: %w", err)
		}
	}
	run.StageDone("export", time.Since(start))
	log.Info("summary written", "path", p.cfg.OutputPath)

	return nil
}
