package service

import (
	"context"
	"fmt"

	"learnhub/internal/model"
	"learnhub/internal/repository"
)

// ProgressService tracks per-chapter learner progress.
type ProgressService interface {
	// Upsert stores progress for (userID, chapterID); last write wins.
	Upsert(ctx context.Context, userID, chapterID uint, progress int) error
	ListByUser(ctx context.Context, userID uint) ([]model.UserProgress, error)
}

type progressService struct {
	repo repository.ProgressRepository
}

// NewProgressService creates a new progress service.
func NewProgressService(repo repository.ProgressRepository) ProgressService {
	return &progressService{repo: repo}
}

func (s *progressService) Upsert(ctx context.Context, userID, chapterID uint, progress int) error {
	err := s.repo.Upsert(ctx, &model.UserProgress{
		UserID:    userID,
		ChapterID: chapterID,
		Progress:  progress,
	})
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (s *progressService) ListByUser(ctx context.Context, userID uint) ([]model.UserProgress, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return rows, nil
}
