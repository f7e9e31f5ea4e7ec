package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnhub/internal/model"
)

// ProgressSummary is the per-user aggregate shown on the admin dashboard.
type ProgressSummary struct {
	Username      string  `json:"username"`
	ProgressCount int64   `json:"progress_count"`
	AvgProgress   float64 `json:"avg_progress"`
}

// ProgressRepository defines progress persistence operations.
type ProgressRepository interface {
	// Upsert inserts or replaces the (user, chapter) row, last write wins.
	Upsert(ctx context.Context, p *model.UserProgress) error
	ListByUser(ctx context.Context, userID uint) ([]model.UserProgress, error)
	Count(ctx context.Context) (int64, error)
	Average(ctx context.Context) (float64, error)
	SummaryByUser(ctx context.Context) ([]ProgressSummary, error)
}

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository builds a GORM-backed repository.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Upsert(ctx context.Context, p *model.UserProgress) error {
	p.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "chapter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"progress", "updated_at"}),
	}).Create(p).Error
}

func (r *progressRepository) ListByUser(ctx context.Context, userID uint) ([]model.UserProgress, error) {
	var rows []model.UserProgress
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *progressRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserProgress{}).Count(&count).Error
	return count, err
}

func (r *progressRepository) Average(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&model.UserProgress{}).
		Select("AVG(progress)").Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *progressRepository) SummaryByUser(ctx context.Context) ([]ProgressSummary, error) {
	var rows []ProgressSummary
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.username, COUNT(user_progresses.id) AS progress_count, COALESCE(AVG(user_progresses.progress), 0) AS avg_progress").
		Joins("LEFT JOIN user_progresses ON users.id = user_progresses.user_id").
		Group("users.id, users.username").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
