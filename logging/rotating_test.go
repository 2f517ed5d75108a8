package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWeekKey(t *testing.T) {
	tests := []struct {
		date     time.Time
		expected string
	}{
		{time.Date(2025, 10, 8, 12, 0, 0, 0, time.UTC), "2025-W41"},
		{time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), "2020-W53"},
		{time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), "2025-W01"},
	}

	for _, tt := range tests {
		if got := weekKey(tt.date); got != tt.expected {
			t.Errorf("weekKey(%s) = %s, want %s", tt.date.Format(time.DateOnly), got, tt.expected)
		}
	}
}

func TestRotatingLoggerWritesWeeklyFile(t *testing.T) {
	dir := t.TempDir()
	rl, err := OpenRotatingLogger(dir, 4, 1024*1024)
	if err != nil {
		t.Fatalf("OpenRotatingLogger returned error: %v", err)
	}

	if _, err := rl.Write([]byte("first line\n")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if err := rl.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	path := filepath.Join(dir, "app-"+weekKey(time.Now())+".log")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected log file %s: %v", path, err)
	}
	if string(content) != "first line\n" {
		t.Errorf("Unexpected content %q", content)
	}
}

func TestRotatingLoggerRotatesBySize(t *testing.T) {
	dir := t.TempDir()
	rl, err := OpenRotatingLogger(dir, 4, 100)
	if err != nil {
		t.Fatalf("OpenRotatingLogger returned error: %v", err)
	}
	defer func() { _ = rl.Close() }()

	line := []byte(strings.Repeat("x", 59) + "\n")
	for i := 0; i < 3; i++ {
		if _, err := rl.Write(line); err != nil {
			t.Fatalf("Write %d returned error: %v", i, err)
		}
	}

	week := weekKey(time.Now())
	for _, name := range []string{"app-" + week + ".log", numberedName(week, 1), numberedName(week, 2)} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
			continue
		}
		if info.Size() != int64(len(line)) {
			t.Errorf("Expected %s to hold one line, got %d bytes", name, info.Size())
		}
	}
}

func TestRotatingLoggerContinuesNumberedFile(t *testing.T) {
	dir := t.TempDir()
	week := weekKey(time.Now())

	// A full base file and a partially written continuation
	if err := os.WriteFile(filepath.Join(dir, "app-"+week+".log"), []byte(strings.Repeat("x", 200)), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, numberedName(week, 1)), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	rl, err := OpenRotatingLogger(dir, 4, 100)
	if err != nil {
		t.Fatalf("OpenRotatingLogger returned error: %v", err)
	}
	defer func() { _ = rl.Close() }()

	if _, err := rl.Write([]byte("y")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	content, _ := os.ReadFile(filepath.Join(dir, numberedName(week, 1)))
	if string(content) != "xy" {
		t.Errorf("Expected to append to the numbered file, got %q", content)
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	rl, err := OpenRotatingLogger(dir, 1, 1024*1024)
	if err != nil {
		t.Fatalf("OpenRotatingLogger returned error: %v", err)
	}
	defer func() { _ = rl.Close() }()

	old := time.Now().Add(-30 * 24 * time.Hour)
	for _, name := range []string{"app-2020-W01.log", "app-2020-W01_01.log", "other.log"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(path, old, old); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := rl.cleanupOldLogs()
	if err != nil {
		t.Fatalf("cleanupOldLogs returned error: %v", err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 files removed, got %d", removed)
	}

	if _, err := os.Stat(filepath.Join(dir, "other.log")); err != nil {
		t.Error("Files not matching the log pattern must be kept")
	}
	if _, err := os.Stat(filepath.Join(dir, "app-"+weekKey(time.Now())+".log")); err != nil {
		t.Error("Current log file must be kept")
	}
}

func TestRotatingLoggerCloseTwice(t *testing.T) {
	rl, err := OpenRotatingLogger(t.TempDir(), 4, 1024*1024)
	if err != nil {
		t.Fatalf("OpenRotatingLogger returned error: %v", err)
	}

	if err := rl.Close(); err != nil {
		t.Fatalf("First close returned error: %v", err)
	}
	if err := rl.Close(); err != nil {
		t.Errorf("Second close returned error: %v", err)
	}
}
