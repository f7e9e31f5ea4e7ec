package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"learnhub/internal/model"
	"learnhub/internal/repository"
)

func TestRecorder_Activity(t *testing.T) {
	db := newTestDB(t)
	rec := NewRecorder(repository.NewActivityRepository(db), zerolog.Nop())

	rec.Activity(7, "LOGIN", "User logged in", "127.0.0.1", "test-agent")

	assert.Eventually(t, func() bool {
		var count int64
		db.Model(&model.UserActivity{}).Where("user_id = ? AND action = ?", 7, "LOGIN").Count(&count)
		return count == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRecorder_System(t *testing.T) {
	db := newTestDB(t)
	rec := NewRecorder(repository.NewActivityRepository(db), zerolog.Nop())

	rec.System(LevelWarning, "Failed login attempt for email: a@x.com", "IP: 127.0.0.1")

	assert.Eventually(t, func() bool {
		var count int64
		db.Model(&model.SystemLog{}).Where("level = ?", LevelWarning).Count(&count)
		return count == 1
	}, 2*time.Second, 10*time.Millisecond)
}
