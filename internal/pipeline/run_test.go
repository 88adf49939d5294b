package pipeline

import (
	"testing"
	"time"
)

func TestRun_SnapshotCopiesState(t *testing.T) {
	run := NewRun()
	if run.ID == "" {
		t.Fatal("expected a run id")
	}

	run.SetCounts(10, 7)
	run.StageDone("load", 125*time.Millisecond)
	run.StageDone("clean", 3*time.Millisecond)
	run.AddError("boom")
	run.Finish()

	snap := run.Snapshot()
	if snap.DocsLoaded != 10 || snap.DocsKept != 7 {
		t.Errorf("expected counts 10/7, got %d/%d", snap.DocsLoaded, snap.DocsKept)
	}
	if len(snap.Stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(snap.Stages))
	}
	if snap.Stages[0].Stage != "load" || snap.Stages[0].DurationMs != 125 {
		t.Errorf("unexpected first stage: %+v", snap.Stages[0])
	}
	if len(snap.Errors) != 1 || snap.Errors[0] != "boom" {
		t.Errorf("unexpected errors: %v", snap.Errors)
	}
	if snap.FinishedAt.IsZero() {
		t.Error("expected finished timestamp")
	}

	// Mutating the snapshot must not affect the run.
	snap.Stages[0].Stage = "mutated"
	if run.Snapshot().Stages[0].Stage != "load" {
		t.Error("snapshot shares backing state with the run")
	}
}

func TestRun_ErrorsNeverNilInSnapshot(t *testing.T) {
	snap := NewRun().Snapshot()
	if snap.Errors == nil {
		t.Error("expected empty error slice, got nil")
	}
}

func TestNewRun_UniqueIDs(t *testing.T) {
	a, b := NewRun(), NewRun()
	if a.ID == b.ID {
		t.Errorf("expected distinct run ids, both %q", a.ID)
	}
}
