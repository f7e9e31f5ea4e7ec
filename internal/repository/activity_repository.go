package repository

import (
	"context"

	"gorm.io/gorm"

	"learnhub/internal/model"
)

// ActivityRow is a user activity joined with the acting user's identity.
type ActivityRow struct {
	model.UserActivity
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// ActivityRepository defines audit-trail persistence operations. Writes are
// issued by the recorder and must stay cheap single inserts.
type ActivityRepository interface {
	CreateActivity(ctx context.Context, a *model.UserActivity) error
	CreateSystemLog(ctx context.Context, l *model.SystemLog) error
	ListActivities(ctx context.Context, userID uint, limit int) ([]ActivityRow, error)
	ListSystemLogs(ctx context.Context, level string, limit int) ([]model.SystemLog, error)
	CountActivities(ctx context.Context) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository builds a GORM-backed repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) CreateActivity(ctx context.Context, a *model.UserActivity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *activityRepository) CreateSystemLog(ctx context.Context, l *model.SystemLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *activityRepository) ListActivities(ctx context.Context, userID uint, limit int) ([]ActivityRow, error) {
	q := r.db.WithContext(ctx).Model(&model.UserActivity{}).
		Select("user_activities.*, users.username, users.email").
		Joins("JOIN users ON user_activities.user_id = users.id")
	if userID != 0 {
		q = q.Where("user_activities.user_id = ?", userID)
	}
	var rows []ActivityRow
	if err := q.Order("user_activities.created_at DESC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *activityRepository) ListSystemLogs(ctx context.Context, level string, limit int) ([]model.SystemLog, error) {
	q := r.db.WithContext(ctx).Model(&model.SystemLog{})
	if level != "" {
		q = q.Where("level = ?", level)
	}
	var logs []model.SystemLog
	if err := q.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *activityRepository) CountActivities(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserActivity{}).Count(&count).Error
	return count, err
}
