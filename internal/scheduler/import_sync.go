// Package scheduler runs the periodic Discogs import on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/sdeneef/discodash/internal/config"
	"github.com/sdeneef/discodash/internal/importer"
)

// ImportScheduler manages the periodic full-replace import.
type ImportScheduler struct {
	service *importer.Service
	cfg     config.ImportSync

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
	isSyncing bool
}

// NewImportScheduler creates a new scheduler instance.
func NewImportScheduler(service *importer.Service, cfg config.ImportSync) *ImportScheduler {
	return &ImportScheduler{
		service: service,
		cfg:     cfg,
		cron:    cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if periodic import is enabled.
func (s *ImportScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Import scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.runImport()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.Schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Import scheduler: started with schedule '%s'", s.cfg.Schedule)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running import.
func (s *ImportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	log.Printf("Import scheduler: stopped")
}

// RunNow triggers an immediate import outside the schedule.
func (s *ImportScheduler) RunNow() {
	go s.runImport()
}

func (s *ImportScheduler) runImport() {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		log.Printf("Import scheduler: previous import still running, skipping")
		return
	}
	s.isSyncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	summary, err := s.service.Run(context.Background())
	if err != nil {
		log.Printf("Import scheduler: import failed: %v", err)
		return
	}
	log.Printf("Import scheduler: imported %d collection items and %d wantlist items",
		summary.CollectionItems, summary.WantlistItems)
}
