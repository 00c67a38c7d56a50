package upload

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically removes scratch files left behind by crashed or
// interrupted requests.
type Sweeper struct {
	dir    string
	maxAge time.Duration
	cron   *cron.Cron
	now    func() time.Time
}

// NewSweeper creates a sweeper for dir removing files older than maxAge
func NewSweeper(dir string, maxAge time.Duration) *Sweeper {
	return &Sweeper{
		dir:    dir,
		maxAge: maxAge,
		cron:   cron.New(),
		now:    time.Now,
	}
}

// Start schedules Sweep with a standard five-field cron expression
func (s *Sweeper) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() {
		if n, err := s.Sweep(); err != nil {
			log.Printf("❌ Scratch sweep failed: %v", err)
		} else if n > 0 {
			log.Printf("🧹 Removed %d stale scratch file(s)", n)
		}
	}); err != nil {
		return fmt.Errorf("failed to add sweep job: %w", err)
	}
	s.cron.Start()
	log.Printf("Scratch sweep scheduled: %s (max age %s)", schedule, s.maxAge)
	return nil
}

// Stop stops the schedule and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep removes regular files in the scratch directory older than maxAge
// and returns how many were removed.
func (s *Sweeper) Sweep() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-s.maxAge)
	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil && !os.IsNotExist(err) {
			log.Printf("⚠️  Failed to remove %s: %v", e.Name(), err)
			continue
		}
		removed++
	}
	return removed, nil
}
