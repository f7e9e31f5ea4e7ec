package repository

import (
	"context"

	"gorm.io/gorm"

	"learnhub/internal/model"
)

// ContentFilter narrows content listings. Zero values mean "no filter".
type ContentFilter struct {
	Type      string
	ChapterID uint
}

// ContentRepository defines content persistence operations.
type ContentRepository interface {
	Create(ctx context.Context, item *model.ContentItem) error
	FindByID(ctx context.Context, id uint) (*model.ContentItem, error)
	List(ctx context.Context, filter ContentFilter) ([]model.ContentItem, error)
	Delete(ctx context.Context, id uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository builds a GORM-backed repository.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, item *model.ContentItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *contentRepository) FindByID(ctx context.Context, id uint) (*model.ContentItem, error) {
	var item model.ContentItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) List(ctx context.Context, filter ContentFilter) ([]model.ContentItem, error) {
	q := r.db.WithContext(ctx).Model(&model.ContentItem{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.ChapterID != 0 {
		q = q.Where("chapter_id = ?", filter.ChapterID)
	}
	var items []model.ContentItem
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *contentRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.ContentItem{}, id)
	return res.RowsAffected, res.Error
}

func (r *contentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ContentItem{}).Count(&count).Error
	return count, err
}
