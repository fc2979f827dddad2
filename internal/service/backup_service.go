package service

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/benni94/mazeChromeBE/pkg/database"
	"github.com/benni94/mazeChromeBE/pkg/logger"
)

// BackupStatus is the scheduler state exposed over the admin API.
type BackupStatus string

const (
	BackupStopped BackupStatus = "stopped"
	BackupRunning BackupStatus = "running"
)

// BackupService periodically copies the live database file to the backup
// path and restores it on demand. At most one schedule runs at a time; the
// ticker goroutine cannot fire again once Stop has returned.
type BackupService struct {
	db         *database.DB
	backupPath string
	interval   time.Duration

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	done     sync.WaitGroup
}

func NewBackupService(db *database.DB, backupPath string, interval time.Duration) *BackupService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &BackupService{
		db:         db,
		backupPath: backupPath,
		interval:   interval,
	}
}

// Start takes an immediate snapshot and schedules recurring ones. If the
// immediate snapshot fails the error is returned and the scheduler stays
// stopped.
func (s *BackupService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrBackupAlreadyRunning
	}

	if err := s.Snapshot(); err != nil {
		return err
	}

	s.stopChan = make(chan struct{})
	s.running = true

	s.done.Add(1)
	go s.run(s.stopChan)

	logger.Info("Backup service started", "interval", s.interval, "path", s.backupPath)

	return nil
}

// Stop cancels the schedule. It returns only after the ticker goroutine has
// exited, so no snapshot can fire afterwards.
func (s *BackupService) Stop() error {
	s.mu.Lock()

	if !s.running {
		s.mu.Unlock()
		return ErrBackupNotRunning
	}

	close(s.stopChan)
	s.running = false
	s.mu.Unlock()

	s.done.Wait()

	logger.Info("Backup service stopped")

	return nil
}

// Status returns the current scheduler state.
func (s *BackupService) Status() BackupStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return BackupRunning
	}
	return BackupStopped
}

func (s *BackupService) run(stop chan struct{}) {
	defer s.done.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// a failed cycle is logged and skipped; the schedule keeps going
			if err := s.Snapshot(); err != nil {
				logger.Error("Scheduled backup failed", "error", err)
			}
		case <-stop:
			return
		}
	}
}

// Snapshot copies the live database file over the previous snapshot.
func (s *BackupService) Snapshot() error {
	if err := s.db.Snapshot(s.backupPath); err != nil {
		return err
	}

	logger.Debug("Snapshot written", "path", s.backupPath)

	return nil
}

// Restore replaces the live database with the latest snapshot.
func (s *BackupService) Restore() error {
	if _, err := os.Stat(s.backupPath); err != nil {
		if os.IsNotExist(err) {
			return ErrBackupNotFound
		}
		return fmt.Errorf("failed to stat snapshot: %w", err)
	}

	return s.db.Restore(s.backupPath)
}
