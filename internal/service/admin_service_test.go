package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"learnhub/internal/auth"
	apperrors "learnhub/internal/errors"
	"learnhub/internal/model"
	"learnhub/internal/repository"
)

func newTestAdminService(t *testing.T) (AdminService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewAdminService(
		repository.NewUserRepository(db),
		repository.NewAdminRepository(db),
		repository.NewContentRepository(db),
		repository.NewProgressRepository(db),
		repository.NewActivityRepository(db),
		repository.NewSessionRepository(db),
		nil,
	)
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, username, email string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword("pw1")
	require.NoError(t, err)
	user := &model.User{Username: username, Email: email, PasswordHash: hash}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestAdminService_ControlUser(t *testing.T) {
	ctx := context.Background()

	t.Run("suspend sets the flag", func(t *testing.T) {
		svc, db := newTestAdminService(t)
		user := seedUser(t, db, "alice", "a@x.com")

		res, err := svc.ControlUser(ctx, user.ID, ActionSuspend)
		require.NoError(t, err)
		assert.Equal(t, "User suspended successfully", res.Message)

		var stored model.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.True(t, stored.Suspended)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		svc, db := newTestAdminService(t)
		user := seedUser(t, db, "bob", "b@x.com")

		_, err := svc.ControlUser(ctx, user.ID, ActionDelete)
		require.NoError(t, err)

		err = db.First(&model.User{}, user.ID).Error
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("delete of a missing user is 404", func(t *testing.T) {
		svc, _ := newTestAdminService(t)

		_, err := svc.ControlUser(ctx, 9999, ActionDelete)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("reset_password stores the temp password hashed", func(t *testing.T) {
		svc, db := newTestAdminService(t)
		user := seedUser(t, db, "carol", "c@x.com")

		res, err := svc.ControlUser(ctx, user.ID, ActionResetPassword)
		require.NoError(t, err)
		require.NotEmpty(t, res.NewPassword)

		var stored model.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.NotEqual(t, res.NewPassword, stored.PasswordHash)
		assert.True(t, auth.CheckPassword(res.NewPassword, stored.PasswordHash))
		assert.False(t, auth.CheckPassword("pw1", stored.PasswordHash))
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		svc, db := newTestAdminService(t)
		user := seedUser(t, db, "dave", "d@x.com")

		_, err := svc.ControlUser(ctx, user.ID, "explode")
		assert.ErrorIs(t, err, apperrors.ErrInvalidAction)
	})
}

func TestAdminService_Stats(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestAdminService(t)

	u1 := seedUser(t, db, "alice", "a@x.com")
	u2 := seedUser(t, db, "bob", "b@x.com")
	progressRepo := repository.NewProgressRepository(db)
	require.NoError(t, progressRepo.Upsert(ctx, &model.UserProgress{UserID: u1.ID, ChapterID: 1, Progress: 40}))
	require.NoError(t, progressRepo.Upsert(ctx, &model.UserProgress{UserID: u2.ID, ChapterID: 1, Progress: 60}))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalProgress)
	assert.Equal(t, 50, stats.AverageProgress)
}

func TestAdminService_StatsEmpty(t *testing.T) {
	svc, _ := newTestAdminService(t)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalUsers)
	assert.Zero(t, stats.AverageProgress)
}

func TestAdminService_Dashboard(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestAdminService(t)

	user := seedUser(t, db, "alice", "a@x.com")
	require.NoError(t, db.Create(&model.AdminUser{Username: "root", Email: "admin@x.com", PasswordHash: "x", Role: auth.RoleAdmin}).Error)
	activityRepo := repository.NewActivityRepository(db)
	require.NoError(t, activityRepo.CreateActivity(ctx, &model.UserActivity{UserID: user.ID, Action: "LOGIN"}))
	require.NoError(t, activityRepo.CreateSystemLog(ctx, &model.SystemLog{Level: LevelWarning, Message: "warn"}))

	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.TotalUsers)
	assert.Equal(t, int64(1), d.TotalAdmins)
	assert.Equal(t, int64(1), d.TotalActivities)
	require.Len(t, d.RecentActivities, 1)
	assert.Equal(t, "alice", d.RecentActivities[0].Username)
	require.Len(t, d.SystemLogs, 1)
	require.Len(t, d.UserProgressSummary, 1)
	assert.Equal(t, "alice", d.UserProgressSummary[0].Username)
}
