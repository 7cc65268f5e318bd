package benchstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return store
}

func TestInsertRunAndListRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	results := []CaseResult{
		{Word: "hello", Top1: true, Top3: true, Rank: 1, Confidence: 0.9, LatencyMs: 1.5},
		{Word: "world", Top1: false, Top3: true, Rank: 2, Confidence: 0.6, LatencyMs: 2.5},
	}
	startedAt := time.Date(2026, 8, 6, 12, 0, 0, 0, time.UTC)
	runID, err := store.InsertRun(ctx, "en-US", "qwerty", startedAt, results)
	if err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}
	if runID == 0 {
		t.Fatalf("expected nonzero run ID")
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.ID != runID {
		t.Fatalf("expected run ID %d, got %d", runID, run.ID)
	}
	if run.DictLang != "en-US" || run.LayoutTag != "qwerty" {
		t.Fatalf("unexpected run metadata: %+v", run)
	}
	if run.CaseCount != 2 {
		t.Fatalf("expected case count 2, got %d", run.CaseCount)
	}
	if run.Top1Count != 1 || run.Top3Count != 2 {
		t.Fatalf("unexpected top counts: %+v", run)
	}
	if !run.StartedAt.Equal(startedAt) {
		t.Fatalf("expected started at %v, got %v", startedAt, run.StartedAt)
	}
}

func TestListCaseResultsRoundTrips(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	results := []CaseResult{
		{Word: "hero", Top1: false, Top3: true, Rank: 3, Confidence: 0.4, LatencyMs: 3.1},
	}
	runID, err := store.InsertRun(ctx, "en-US", "qwerty", time.Now(), results)
	if err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}

	got, err := store.ListCaseResults(ctx, runID)
	if err != nil {
		t.Fatalf("ListCaseResults failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 case result, got %d", len(got))
	}
	if got[0].Word != "hero" || got[0].Rank != 3 || got[0].Top1 || !got[0].Top3 {
		t.Fatalf("unexpected case result: %+v", got[0])
	}
}

func TestListRunsRespectsLastLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.InsertRun(ctx, "en-US", "qwerty", time.Now(), nil); err != nil {
			t.Fatalf("InsertRun failed: %v", err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs with limit, got %d", len(runs))
	}
}
