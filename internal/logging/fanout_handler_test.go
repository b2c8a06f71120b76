package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFanoutHandlerCollapses(t *testing.T) {
	if _, ok := newFanoutHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every handler is nil")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newFanoutHandler(nil, inner); h != inner {
		t.Fatal("expected lone handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsEachLevel(t *testing.T) {
	var console, file bytes.Buffer
	lvlInfo := new(slog.LevelVar)
	lvlDebug := new(slog.LevelVar)
	lvlDebug.Set(slog.LevelDebug)

	logger := slog.New(TeeHandler(
		newPrettyHandler(&console, lvlInfo, false),
		newJSONHandler(&file, lvlDebug, false),
	))
	logger.Debug("debug only")
	logger.Info("both", slog.String("category", "Images"))

	if strings.Contains(console.String(), "debug only") {
		t.Fatalf("console received debug record: %q", console.String())
	}
	if !strings.Contains(file.String(), "debug only") {
		t.Fatalf("file missing debug record: %q", file.String())
	}
	if !strings.Contains(console.String(), "category=Images") {
		t.Fatalf("console missing attr: %q", console.String())
	}
	if !strings.Contains(file.String(), `"category":"Images"`) {
		t.Fatalf("file missing attr: %q", file.String())
	}
}

func TestFanoutHandlerWithAttrsAndGroup(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h := newFanoutHandler(slog.NewJSONHandler(&buf1, nil), slog.NewJSONHandler(&buf2, nil))
	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("run_id", "r1")}).WithGroup("move"))
	logger.Info("moved", slog.String("name", "a.png"))

	for i, buf := range []*bytes.Buffer{&buf1, &buf2} {
		out := buf.String()
		if !strings.Contains(out, `"run_id":"r1"`) || !strings.Contains(out, `"move":{"name":"a.png"}`) {
			t.Fatalf("handler %d output missing attrs: %q", i, out)
		}
	}
}

