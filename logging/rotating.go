package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

var numberedLogPattern = regexp.MustCompile(`^app-\d{4}-W\d{2}_(\d{2})\.log$`)

// RotatingLogger is an io.Writer over weekly log files. A week's file is
// continued as app-YYYY-Www_NN.log once it reaches the size limit, and files
// older than the retention period are removed once a day.
type RotatingLogger struct {
	dir         string
	retention   time.Duration
	maxFileSize int64

	mu      sync.Mutex
	file    *os.File
	week    string
	size    int64
	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// OpenRotatingLogger creates dir if needed and opens this week's file
func OpenRotatingLogger(dir string, retentionWeeks int, maxFileSize int64) (*RotatingLogger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rl := &RotatingLogger{
		dir:         dir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxFileSize: maxFileSize,
		stop:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}

	rl.mu.Lock()
	err := rl.rotate(weekKey(time.Now()), false)
	rl.mu.Unlock()
	if err != nil {
		return nil, err
	}

	go rl.cleanupLoop()

	return rl, nil
}

// weekKey returns the ISO week in YYYY-Www format
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Write implements io.Writer
func (rl *RotatingLogger) Write(p []byte) (int, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	week := weekKey(time.Now())
	full := rl.maxFileSize > 0 && rl.size+int64(len(p)) > rl.maxFileSize
	if week != rl.week || full {
		if err := rl.rotate(week, full && week == rl.week); err != nil {
			return 0, err
		}
	}

	if rl.file == nil {
		return 0, fmt.Errorf("no log file available")
	}

	n, err := rl.file.Write(p)
	rl.size += int64(n)
	return n, err
}

// rotate switches to the file for week (caller must hold mu).
// When bySize is set a new numbered file is always started.
func (rl *RotatingLogger) rotate(week string, bySize bool) error {
	if rl.file != nil {
		_ = rl.file.Close()
		rl.file = nil
	}

	name := rl.fileFor(week, bySize)
	path := filepath.Join(rl.dir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	rl.file = file
	rl.week = week
	rl.size = 0
	if info, err := file.Stat(); err == nil {
		rl.size = info.Size()
	}

	return nil
}

// fileFor picks the file to append to for week
func (rl *RotatingLogger) fileFor(week string, bySize bool) string {
	base := fmt.Sprintf("app-%s.log", week)
	if !bySize && !rl.isFull(base) && rl.highestSequence(week) == 0 {
		return base
	}

	seq := rl.highestSequence(week)
	if !bySize && seq > 0 && !rl.isFull(numberedName(week, seq)) {
		return numberedName(week, seq)
	}
	return numberedName(week, seq+1)
}

func numberedName(week string, seq int) string {
	return fmt.Sprintf("app-%s_%02d.log", week, seq)
}

func (rl *RotatingLogger) isFull(name string) bool {
	info, err := os.Stat(filepath.Join(rl.dir, name))
	if err != nil {
		return false
	}
	return rl.maxFileSize > 0 && info.Size() >= rl.maxFileSize
}

// highestSequence returns the largest NN of the numbered files of week
func (rl *RotatingLogger) highestSequence(week string) int {
	matches, _ := filepath.Glob(filepath.Join(rl.dir, fmt.Sprintf("app-%s_??.log", week)))

	highest := 0
	for _, match := range matches {
		m := numberedLogPattern.FindStringSubmatch(filepath.Base(match))
		if len(m) < 2 {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

// cleanupOldLogs removes log files not modified within the retention period
func (rl *RotatingLogger) cleanupOldLogs() (int, error) {
	entries, err := os.ReadDir(rl.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := time.Now().Add(-rl.retention)
	var stale []string

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "app-") || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			stale = append(stale, name)
		}
	}

	sort.Strings(stale)
	removed := 0
	for _, name := range stale {
		if err := os.Remove(filepath.Join(rl.dir, name)); err == nil {
			removed++
		}
	}

	return removed, nil
}

func (rl *RotatingLogger) cleanupLoop() {
	defer close(rl.stopped)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			// Printed to the console to avoid logging through ourselves
			if n, err := rl.cleanupOldLogs(); err != nil {
				fmt.Fprintf(os.Stderr, "log cleanup failed: %v\n", err)
			} else if n > 0 {
				fmt.Printf("Cleaned up %d old log files\n", n)
			}
		}
	}
}

// Close stops the cleanup goroutine and closes the current file
func (rl *RotatingLogger) Close() error {
	rl.once.Do(func() { close(rl.stop) })
	<-rl.stopped

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.file == nil {
		return nil
	}
	err := rl.file.Close()
	rl.file = nil
	return err
}
