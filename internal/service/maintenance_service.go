package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/benni94/mazeChromeBE/internal/repository"
)

// MaintenanceService carries the admin-only mutations: rename, table clear
// and mock-data seeding. Destructive operations work on logical table names
// from a fixed allow-list; the configured protected list wins over it.
type MaintenanceService struct {
	repo      *repository.ProgressRepository
	protected map[string]struct{}
	rng       *rand.Rand
}

func NewMaintenanceService(repo *repository.ProgressRepository, protectedTables []string) *MaintenanceService {
	protected := make(map[string]struct{}, len(protectedTables))
	for _, name := range protectedTables {
		protected[name] = struct{}{}
	}

	return &MaintenanceService{
		repo:      repo,
		protected: protected,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Rename changes every record stored exactly as findName to replaceName and
// returns how many rows changed; zero means no record matched.
func (s *MaintenanceService) Rename(ctx context.Context, findName, replaceName string) (int64, error) {
	if findName == "" || replaceName == "" {
		return 0, ErrInvalidInput
	}

	affected, err := s.repo.Rename(ctx, findName, replaceName)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return 0, ErrDuplicateName
		}
		return 0, fmt.Errorf("failed to rename: %w", err)
	}

	return affected, nil
}

// Clear empties the named logical table. Names on the protected list are
// rejected before any storage call; names outside the allow-list never reach
// the database at all, which also closes the table-name injection hole of
// interpolated SQL.
func (s *MaintenanceService) Clear(ctx context.Context, tableName string) (int64, error) {
	if tableName == "" {
		return 0, ErrInvalidInput
	}

	if _, isProtected := s.protected[tableName]; isProtected {
		return 0, ErrProtectedTable
	}

	switch tableName {
	case "game_progress":
		affected, err := s.repo.DeleteAll(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to clear table: %w", err)
		}
		return affected, nil
	default:
		return 0, ErrUnknownTable
	}
}

// LoadSynthetic inserts n randomized mock records as one all-or-nothing
// batch. n defaults to 30 and is capped at 500.
func (s *MaintenanceService) LoadSynthetic(ctx context.Context, n int) (int, error) {
	if n <= 0 {
		n = 30
	}
	if n > 500 {
		n = 500
	}

	records := generateSynthetic(s.rng, n, time.Now())

	if err := s.repo.InsertBatch(ctx, records); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return 0, ErrDuplicateName
		}
		return 0, fmt.Errorf("failed to load mock data: %w", err)
	}

	return len(records), nil
}
