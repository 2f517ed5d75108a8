// Package scheduler runs the background jobs of the symptom finder. The
// catalog is loaded once at start; afterwards the source file is only
// watched, and a change is reported until someone reloads explicitly.
package scheduler

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/giygas/chobisangyak/interfaces"
	"github.com/giygas/chobisangyak/logging"
	"github.com/giygas/chobisangyak/metrics"
	"github.com/go-co-op/gocron"
)

// Compile-time checks
var (
	_ interfaces.Scheduler     = (*Scheduler)(nil)
	_ interfaces.SourceWatcher = (*Scheduler)(nil)
)

// Scheduler warms the catalog cache and monitors its source using dependency injection
type Scheduler struct {
	dataStore interfaces.DataStore
	interval  time.Duration
	scheduler *gocron.Scheduler
	warned    atomic.Bool
	stat      func(string) (os.FileInfo, error)
}

// NewScheduler creates a new scheduler checking the source every interval
func NewScheduler(dataStore interfaces.DataStore, interval time.Duration) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		interval:  interval,
		scheduler: gocron.NewScheduler(time.Local),
		stat:      os.Stat,
	}
}

// Start loads the catalog and schedules the source check. An unavailable
// catalog is not a startup failure: it is served as such until a reload.
func (s *Scheduler) Start() error {
	if _, err := s.dataStore.LoadCatalog(); err != nil {
		logging.Error("Catalog unavailable at startup", "source", s.dataStore.GetSource(), "error", err)
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.checkSource)
	if err != nil {
		logging.Error("Failed to schedule source check", "error", err)
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// IsStale reports whether the source file was modified after the last load
func (s *Scheduler) IsStale() bool {
	lastLoaded := s.dataStore.GetLastLoaded()
	if lastLoaded.IsZero() {
		return false
	}

	info, err := s.stat(s.dataStore.GetSource())
	if err != nil {
		return false
	}

	return info.ModTime().After(lastLoaded)
}

// checkSource warns once per change that an explicit reload is needed
func (s *Scheduler) checkSource() {
	if !s.IsStale() {
		metrics.CatalogSourceStale.Set(0)
		s.warned.Store(false)
		return
	}

	metrics.CatalogSourceStale.Set(1)
	if s.warned.CompareAndSwap(false, true) {
		logging.Warn("Catalog source changed since last load, reload required",
			"source", s.dataStore.GetSource(),
			"last_loaded", s.dataStore.GetLastLoaded().Format(time.RFC3339))
	}
}
