package repository

import (
	"context"

	"gorm.io/gorm"

	"learnhub/internal/model"
)

// CatalogRepository serves the read-mostly chapter and course listings.
type CatalogRepository interface {
	ListChapters(ctx context.Context) ([]model.Chapter, error)
	ListCourses(ctx context.Context) ([]model.Course, error)
	CreateChapter(ctx context.Context, c *model.Chapter) error
	CreateCourse(ctx context.Context, c *model.Course) error
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository builds a GORM-backed repository.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListChapters(ctx context.Context) ([]model.Chapter, error) {
	var chapters []model.Chapter
	if err := r.db.WithContext(ctx).Order("id").Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *catalogRepository) ListCourses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *catalogRepository) CreateChapter(ctx context.Context, c *model.Chapter) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *catalogRepository) CreateCourse(ctx context.Context, c *model.Course) error {
	return r.db.WithContext(ctx).Create(c).Error
}
