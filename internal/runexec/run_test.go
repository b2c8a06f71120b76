package runexec_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sortdir/internal/dirlock"
	"sortdir/internal/history"
	"sortdir/internal/logging"
	"sortdir/internal/organizer"
	"sortdir/internal/runexec"
	"sortdir/internal/runlog"
	"sortdir/internal/services"
	"sortdir/internal/testsupport"
)

func TestRunOrganizesRecordsAndWritesLog(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	dir := t.TempDir()
	testsupport.WriteFiles(t, dir, "a.png", "b.txt", "tool")

	var messages []string
	out, err := runexec.Run(context.Background(), runexec.Options{
		Config:   cfg,
		Logger:   logging.NewNop(),
		Store:    store,
		Frontend: "cli",
		Dir:      dir,
		Progress: func(evt organizer.Event) { messages = append(messages, evt.Message) },
		WriteLog: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Result.Moved != 3 || len(messages) != 3 {
		t.Fatalf("moved=%d events=%d, want 3/3", out.Result.Moved, len(messages))
	}
	if out.RunID == "" {
		t.Fatal("expected a history run id")
	}
	if filepath.Dir(out.LogPath) != dir || !strings.HasPrefix(filepath.Base(out.LogPath), cfg.RunLog.Prefix+"-") {
		t.Fatalf("unexpected run log path %q", out.LogPath)
	}
	data, err := os.ReadFile(out.LogPath)
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	if !strings.Contains(string(data), "Files moved: 3") {
		t.Fatalf("run log missing footer:\n%s", data)
	}

	run, err := store.GetRun(context.Background(), out.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Status() != history.StatusCompleted || run.Moved != 3 || run.Frontend != "cli" {
		t.Fatalf("unexpected history run %+v", run)
	}
	moves, err := store.Moves(context.Background(), out.RunID)
	if err != nil {
		t.Fatalf("Moves: %v", err)
	}
	if len(moves) != 3 {
		t.Fatalf("recorded %d moves, want 3", len(moves))
	}
}

func TestRunSecondPassIsNoop(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutHistory())
	dir := t.TempDir()
	testsupport.WriteFiles(t, dir, "a.png", "notes.md")

	opts := runexec.Options{Config: cfg, Dir: dir, WriteLog: true}
	if _, err := runexec.Run(context.Background(), opts); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	events := 0
	opts.Progress = func(organizer.Event) { events++ }
	out, err := runexec.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if out.Result.Moved != 0 || events != 0 {
		t.Fatalf("second run moved=%d events=%d, want 0/0", out.Result.Moved, events)
	}
}

func TestRunRejectsMissingDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	missing := filepath.Join(t.TempDir(), "gone")

	out, err := runexec.Run(context.Background(), runexec.Options{
		Config:   cfg,
		Store:    store,
		Dir:      missing,
		WriteLog: true,
	})
	if !errors.Is(err, organizer.ErrNotADirectory) {
		t.Fatalf("expected ErrNotADirectory, got %v", err)
	}
	if !out.Log.Failed() {
		t.Fatal("expected the run log to be marked failed")
	}
	if filepath.Dir(out.LogPath) != cfg.LogDir() || !strings.Contains(filepath.Base(out.LogPath), "-error-") {
		t.Fatalf("expected error log in %s, got %q", cfg.LogDir(), out.LogPath)
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Fatalf("target must not be created, stat err=%v", err)
	}
	runs, err := store.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no history for a rejected target, got %d runs", len(runs))
	}
}

func TestRunLogsFatalFailureWithHint(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutHistory())
	missing := filepath.Join(t.TempDir(), "gone")
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	if _, err := runexec.Run(context.Background(), runexec.Options{Config: cfg, Logger: logger, Dir: missing}); err == nil {
		t.Fatal("expected an error for a missing directory")
	}

	var failure map[string]any
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var record map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("decode %q: %v", scanner.Text(), err)
		}
		if record["msg"] == "run failed" {
			failure = record
		}
	}
	if failure == nil {
		t.Fatalf("no run failed record in:\n%s", buf.String())
	}
	if failure["level"] != "ERROR" || failure[logging.FieldEventType] != "run_failure" {
		t.Fatalf("unexpected record %v", failure)
	}
	if hint, _ := failure[logging.FieldErrorHint].(string); !strings.Contains(hint, missing) {
		t.Fatalf("error_hint = %v, want it to name %s", failure[logging.FieldErrorHint], missing)
	}
	if failure[logging.FieldImpact] != "no files were moved" {
		t.Fatalf("impact = %v", failure[logging.FieldImpact])
	}
	if failure["error_kind"] != "validation" {
		t.Fatalf("error_kind = %v", failure["error_kind"])
	}
}

func TestRunKeepsSurroundingSpacesInDirectoryName(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutHistory())
	dir := filepath.Join(t.TempDir(), " spaced ")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	testsupport.WriteFiles(t, dir, "a.png")

	out, err := runexec.Run(context.Background(), runexec.Options{Config: cfg, Dir: dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Dir != dir || out.Result.Moved != 1 {
		t.Fatalf("dir=%q moved=%d, want %q and 1", out.Dir, out.Result.Moved, dir)
	}
	if _, err := os.Stat(filepath.Join(dir, "Images", "a.png")); err != nil {
		t.Fatalf("expected moved file: %v", err)
	}
}

func TestRunHonoursDirectoryLock(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutHistory())
	dir := t.TempDir()
	testsupport.WriteFiles(t, dir, "a.png")

	held, err := dirlock.Acquire(cfg.LockDir(), dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	t.Cleanup(func() { _ = held.Release() })

	_, err = runexec.Run(context.Background(), runexec.Options{Config: cfg, Dir: dir})
	if !errors.Is(err, dirlock.ErrBusy) || !errors.Is(err, services.ErrConflict) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.png")); err != nil {
		t.Fatalf("file should stay in place: %v", err)
	}
}

func TestRunWithoutWriteLogLeavesDirectoryClean(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutHistory())
	dir := t.TempDir()
	testsupport.WriteFiles(t, dir, "a.png")
	log := runlog.New()

	out, err := runexec.Run(context.Background(), runexec.Options{Config: cfg, Dir: dir, Log: log})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.LogPath != "" || out.Log != log {
		t.Fatalf("unexpected outcome %+v", out)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, runlog.Pattern(cfg.RunLog.Prefix)))
	if len(matches) != 0 {
		t.Fatalf("no run log expected, found %v", matches)
	}
	if !strings.Contains(log.String(), "Moving (1/1): a.png -> Images") {
		t.Fatalf("log missing progress line:\n%s", log.String())
	}
}

func TestNewOrganizerAppliesOverrides(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCategories(map[string]string{"heic": "Photos"}))
	org, err := runexec.NewOrganizer(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewOrganizer: %v", err)
	}
	if got := org.Table().Classify("IMG_1.HEIC"); got != "Photos" {
		t.Fatalf("Classify = %q, want Photos", got)
	}
}

func TestCompletionMessage(t *testing.T) {
	if got := runexec.CompletionMessage(0); got != "No files to move, directory is already tidy." {
		t.Fatalf("CompletionMessage(0) = %q", got)
	}
	if got := runexec.CompletionMessage(3); got != "Organization complete! Moved 3 files." {
		t.Fatalf("CompletionMessage(3) = %q", got)
	}
}
