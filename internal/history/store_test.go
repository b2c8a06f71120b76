package history_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"sortdir/internal/history"
	"sortdir/internal/logging"
	"sortdir/internal/organizer"
	"sortdir/internal/services"
	"sortdir/internal/testsupport"
)

func TestRunLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	run, err := store.BeginRun(ctx, "/tmp/downloads", "cli")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if len(run.ID) != 36 {
		t.Fatalf("expected uuid run id, got %q", run.ID)
	}

	record := store.Recorder(ctx, run.ID, logging.NewNop())
	record(organizer.Event{Index: 1, Total: 2, Name: "a.png", Category: "Images", Destination: "/tmp/downloads/Images/a.png"})
	record(organizer.Event{Index: 2, Total: 2, Name: "Other Files", Category: "Other Files", Err: errors.New("not a directory")})

	inflight, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if inflight.Status() != history.StatusRunning || inflight.Total != 2 {
		t.Fatalf("unexpected in-flight run %+v", inflight)
	}

	result := organizer.Result{
		Moved:    1,
		Total:    2,
		Failures: []organizer.Failure{{Name: "Other Files", Category: "Other Files"}},
	}
	if err := store.FinishRun(ctx, run.ID, result, nil); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	done, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if done.Moved != 1 || done.Failed != 1 || done.Total != 2 {
		t.Fatalf("unexpected totals %+v", done)
	}
	if done.Status() != history.StatusPartial {
		t.Fatalf("status = %s, want partial", done.Status())
	}
	if done.FinishedAt == nil || done.Duration() < 0 {
		t.Fatalf("expected finish time, got %+v", done)
	}
	if done.Frontend != "cli" || done.Directory != "/tmp/downloads" {
		t.Fatalf("unexpected run metadata %+v", done)
	}

	moves, err := store.Moves(ctx, run.ID)
	if err != nil {
		t.Fatalf("Moves: %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	if !moves[0].Succeeded() || moves[0].Destination != "/tmp/downloads/Images/a.png" {
		t.Fatalf("unexpected first move %+v", moves[0])
	}
	if moves[1].Succeeded() || moves[1].Error != "not a directory" {
		t.Fatalf("unexpected second move %+v", moves[1])
	}
}

func TestFinishRunRecordsFatalError(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()

	run, err := store.BeginRun(ctx, "/nope", "tui")
	if err != nil {
		t.Fatal(err)
	}
	fatal := services.Wrap(organizer.ErrNotADirectory, "organizer", "preflight", "/nope does not exist", nil)
	if err := store.FinishRun(ctx, run.ID, organizer.Result{}, fatal); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}
	got, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status() != history.StatusFailed || got.ErrorKind != "validation" {
		t.Fatalf("unexpected failed run %+v", got)
	}

	if err := store.FinishRun(ctx, "missing", organizer.Result{}, nil); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown run, got %v", err)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()

	var ids []string
	for _, dir := range []string{"/a", "/b", "/c"} {
		run, err := store.BeginRun(ctx, dir, "cli")
		if err != nil {
			t.Fatal(err)
		}
		if err := store.FinishRun(ctx, run.ID, organizer.Result{}, nil); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, run.ID)
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Fatalf("unexpected order %+v", runs)
	}
	if runs[0].Status() != history.StatusCompleted {
		t.Fatalf("status = %s", runs[0].Status())
	}

	all, err := store.ListRuns(ctx, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("ListRuns(0) = %d, %v", len(all), err)
	}

	removed, err := store.Prune(ctx, 1)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	left, _ := store.ListRuns(ctx, 0)
	if len(left) != 1 || left[0].ID != ids[2] {
		t.Fatalf("unexpected runs after prune %+v", left)
	}
}

func TestResolveRunID(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()

	run, err := store.BeginRun(ctx, "/a", "cli")
	if err != nil {
		t.Fatal(err)
	}
	got, err := store.ResolveRunID(ctx, run.ID[:8])
	if err != nil || got != run.ID {
		t.Fatalf("ResolveRunID = %q, %v", got, err)
	}
	if _, err := store.ResolveRunID(ctx, "ab"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for short prefix, got %v", err)
	}
	if _, err := store.ResolveRunID(ctx, "zzzzzzzz"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := store.GetRun(ctx, "zzzzzzzz"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found from GetRun, got %v", err)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	path := store.Path()
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	if _, err := history.Open(cfg); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestRecordEventRequiresRun(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	err := store.RecordEvent(context.Background(), "missing", organizer.Event{Index: 1, Total: 1, Name: "a", Category: "Other Files"})
	if err == nil {
		t.Fatal("expected foreign key failure for unknown run")
	}
}
