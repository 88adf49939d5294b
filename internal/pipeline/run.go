package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Run tracks one pipeline invocation: identity, stage timings, document
// counts, and any errors. Written as JSON next to the output table so a
// result file can always be traced back to the run that produced it.
type Run struct {
	mu sync.Mutex

	ID        string
	StartedAt time.Time

	finishedAt time.Time
	stages     []StageTiming
	docsLoaded int
	docsKept   int
	errors     []string
	scoreStats StatsSnapshot
}

// StageTiming records how long one pipeline stage took.
type StageTiming struct {
	Stage      string `json:"stage"`
	DurationMs int64  `json:"duration_ms"`
}

func NewRun() *Run {
	return &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}
}

// StageDone records a completed stage.
func (r *Run) StageDone(stage string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, StageTiming{Stage: stage, DurationMs: d.Milliseconds()})
}

// SetCounts records how many documents were loaded and how many survived
// cleaning.
func (r *Run) SetCounts(loaded, kept int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docsLoaded = loaded
	r.docsKept = kept
}

// AddError records a run-level error.
func (r *Run) AddError(err string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

// SetScoreStats attaches the per-document scoring duration aggregate.
func (r *Run) SetScoreStats(s StatsSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scoreStats = s
}

// Finish marks the run complete.
func (r *Run) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finishedAt = time.Now()
}

// RunSummary is a read-only, JSON-safe copy of run state.
type RunSummary struct {
	ID         string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at,omitzero"`
	DocsLoaded int           `json:"docs_loaded"`
	DocsKept   int           `json:"docs_kept"`
	Stages     []StageTiming `json:"stages"`
	ScoreStats StatsSnapshot `json:"score_stats"`
	Errors     []string      `json:"errors"`
}

// Snapshot returns a JSON-safe copy of the run state.
func (r *Run) Snapshot() RunSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	stages := make([]StageTiming, len(r.stages))
	copy(stages, r.stages)
	errs := r.errors
	if errs == nil {
		errs = []string{}
	}

	return RunSummary{
		ID:         r.ID,
		StartedAt:  r.StartedAt,
		FinishedAt: r.finishedAt,
		DocsLoaded: r.docsLoaded,
		DocsKept:   r.docsKept,
		Stages:     stages,
		ScoreStats: r.scoreStats,
		Errors:     errs,
	}
}

// WriteFile writes the run summary as JSON.
func (r *Run) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create summary dir: %w", err)
	}
	data, err := json.MarshalIndent(r.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write run summary: %w", err)
	}
	return nil
}
