package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/internal/model"
	"learnhub/internal/repository"
)

func TestProgressService_UpsertLastWriteWins(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(repository.NewProgressRepository(db))
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, 1, 10, 25))
	require.NoError(t, svc.Upsert(ctx, 1, 10, 80))

	var rows []model.UserProgress
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(1), rows[0].UserID)
	assert.Equal(t, uint(10), rows[0].ChapterID)
	assert.Equal(t, 80, rows[0].Progress)
}

func TestProgressService_UpsertDistinctChapters(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(repository.NewProgressRepository(db))
	ctx := context.Background()

	require.NoError(t, svc.Upsert(ctx, 1, 10, 25))
	require.NoError(t, svc.Upsert(ctx, 1, 11, 50))
	require.NoError(t, svc.Upsert(ctx, 2, 10, 75))

	rows, err := svc.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = svc.ListByUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 75, rows[0].Progress)
}
