package model

import "time"

// UserProgress tracks a learner's progress through a chapter. At most one
// row exists per (user, chapter); repeated submissions overwrite.
type UserProgress struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_chapter"`
	ChapterID uint      `json:"chapter_id" gorm:"not null;uniqueIndex:idx_user_chapter"`
	Progress  int       `json:"progress" gorm:"default:0"`
	UpdatedAt time.Time `json:"updated_at"`
}
