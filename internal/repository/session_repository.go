package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"learnhub/internal/model"
)

// SessionRow is a session joined with the owning user's identity.
type SessionRow struct {
	model.UserSession
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SessionRepository records logins for the admin sessions view. Rows are
// never consulted during token verification.
type SessionRepository interface {
	Create(ctx context.Context, s *model.UserSession) error
	ListActive(ctx context.Context, limit int) ([]SessionRow, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository builds a GORM-backed repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *model.UserSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// ListActive returns unexpired sessions, newest first. limit <= 0 means no
// limit.
func (r *sessionRepository) ListActive(ctx context.Context, limit int) ([]SessionRow, error) {
	q := r.db.WithContext(ctx).Model(&model.UserSession{}).
		Select("user_sessions.*, users.username, users.email").
		Joins("JOIN users ON user_sessions.user_id = users.id").
		Where("user_sessions.expires_at > ?", time.Now()).
		Order("user_sessions.created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []SessionRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
