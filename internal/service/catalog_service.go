package service

import (
	"context"
	"fmt"

	"learnhub/internal/model"
	"learnhub/internal/repository"
)

// CatalogService serves the public chapter and course listings.
type CatalogService interface {
	Chapters(ctx context.Context) ([]model.Chapter, error)
	Courses(ctx context.Context) ([]model.Course, error)
}

type catalogService struct {
	repo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) Chapters(ctx context.Context) ([]model.Chapter, error) {
	chapters, err := s.repo.ListChapters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	return chapters, nil
}

func (s *catalogService) Courses(ctx context.Context) ([]model.Course, error) {
	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}
