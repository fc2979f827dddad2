package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/benni94/mazeChromeBE/internal/models"
	"github.com/benni94/mazeChromeBE/internal/repository"
)

// SubmissionService owns the ingestion path: lock check, uniqueness check and
// insert. Gin serves requests concurrently, so the check-then-insert sequence
// is serialized by submitMu; the unique index on the name column backs it up.
type SubmissionService struct {
	repo *repository.ProgressRepository
	lock *LockService

	submitMu sync.Mutex
}

func NewSubmissionService(repo *repository.ProgressRepository, lock *LockService) *SubmissionService {
	return &SubmissionService{
		repo: repo,
		lock: lock,
	}
}

// Submit validates and stores one run result, returning the assigned id.
func (s *SubmissionService) Submit(ctx context.Context, req *models.SubmitRequest) (int64, error) {
	if s.lock.IsLocked() {
		return 0, ErrSubmissionsLocked
	}

	if req.Name == "" || req.CompletionTimeFormatted == "" || req.Timestamp == "" {
		return 0, ErrInvalidInput
	}

	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	exists, err := s.repo.ExistsName(ctx, req.Name)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing name: %w", err)
	}
	if exists {
		return 0, ErrDuplicateName
	}

	rec := req.Record()
	id, err := s.repo.Insert(ctx, &rec)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return 0, ErrDuplicateName
		}
		return 0, fmt.Errorf("failed to store record: %w", err)
	}

	return id, nil
}

// ListRanked returns every record in leaderboard order. The order comes
// straight from the persisted view, so it reflects any mutation immediately.
func (s *SubmissionService) ListRanked(ctx context.Context) ([]models.GameProgressRecord, error) {
	records, err := s.repo.ListRanked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}
