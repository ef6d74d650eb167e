package cleanup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeMockLog writes one JSONL event per timestamp and returns the path.
func writeMockLog(t *testing.T, timestamps []time.Time) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log.jsonl")

	var b strings.Builder
	for i, ts := range timestamps {
		line, err := json.Marshal(map[string]interface{}{
			"time":  ts.UTC(),
			"event": "basket_add",
			"seq":   i,
		})
		if err != nil {
			t.Fatalf("marshal mock event: %v", err)
		}
		b.Write(line)
		b.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("writing mock log: %v", err)
	}
	return path
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	return strings.Count(string(data), "\n")
}

func TestPruneByAge_RemovesOldEvents(t *testing.T) {
	now := time.Now()
	path := writeMockLog(t, []time.Time{
		now.AddDate(0, 0, -60),
		now.AddDate(0, 0, -5),
	})

	removed, err := PruneByAge(path, 30, false)
	if err != nil {
		t.Fatalf("PruneByAge failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if got := countLines(t, path); got != 1 {
		t.Errorf("expected 1 remaining event, got %d", got)
	}
}

func TestPruneByAge_DryRun(t *testing.T) {
	now := time.Now()
	path := writeMockLog(t, []time.Time{
		now.AddDate(0, 0, -60),
		now.AddDate(0, 0, -5),
	})

	removed, err := PruneByAge(path, 30, true)
	if err != nil {
		t.Fatalf("PruneByAge dry-run failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if got := countLines(t, path); got != 2 {
		t.Errorf("expected file untouched in dry-run, got %d lines", got)
	}
}

func TestPruneByAge_NonexistentFile(t *testing.T) {
	removed, err := PruneByAge("/nonexistent/log.jsonl", 30, false)
	if err != nil {
		t.Fatalf("expected nil error for nonexistent log, got: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected 0 removed, got %d", removed)
	}
}

func TestPruneKeepRecent_KeepsCorrectCount(t *testing.T) {
	now := time.Now()
	path := writeMockLog(t, []time.Time{
		now.AddDate(0, 0, -4),
		now.AddDate(0, 0, -3),
		now.AddDate(0, 0, -2),
		now.AddDate(0, 0, -1),
	})

	removed, err := PruneKeepRecent(path, 2, false)
	if err != nil {
		t.Fatalf("PruneKeepRecent failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if got := countLines(t, path); got != 2 {
		t.Errorf("expected 2 remaining events, got %d", got)
	}
}

func TestPruneKeepRecent_KeepMoreThanExist(t *testing.T) {
	now := time.Now()
	path := writeMockLog(t, []time.Time{now.AddDate(0, 0, -1)})

	removed, err := PruneKeepRecent(path, 5, false)
	if err != nil {
		t.Fatalf("PruneKeepRecent failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected 0 removed, got %d", removed)
	}
	if got := countLines(t, path); got != 1 {
		t.Errorf("expected 1 remaining event, got %d", got)
	}
}

func TestPruneKeepRecent_DryRun(t *testing.T) {
	now := time.Now()
	path := writeMockLog(t, []time.Time{
		now.AddDate(0, 0, -3),
		now.AddDate(0, 0, -1),
	})

	removed, err := PruneKeepRecent(path, 1, true)
	if err != nil {
		t.Fatalf("PruneKeepRecent dry-run failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if got := countLines(t, path); got != 2 {
		t.Errorf("expected file untouched in dry-run, got %d lines", got)
	}
}
