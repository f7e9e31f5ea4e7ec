package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"learnhub/internal/cache"
	apperrors "learnhub/internal/errors"
	"learnhub/internal/model"
	"learnhub/internal/repository"
)

const contentCacheTTL = time.Minute

// CreateContentInput carries the fields of a new content item plus an
// optional uploaded file.
type CreateContentInput struct {
	Title     string
	Type      string
	Content   string
	ChapterID uint
	IsPremium bool

	// FileName and File describe an optional upload; File is nil when the
	// item is inline-only.
	FileName string
	File     io.Reader
}

// ContentService handles content listing and admin content management.
//
// Listing does not filter on the premium flag: premium is advisory metadata
// and any caller who reaches the route sees premium rows. Hardening this
// would be a behavior change, not a bug fix.
type ContentService interface {
	List(ctx context.Context, filter repository.ContentFilter) ([]model.ContentItem, error)
	Create(ctx context.Context, input CreateContentInput) (*model.ContentItem, error)
	Delete(ctx context.Context, id uint) error
}

type contentService struct {
	repo      repository.ContentRepository
	cache     *cache.Client
	uploadDir string
	log       zerolog.Logger
}

// NewContentService creates a new content service.
func NewContentService(repo repository.ContentRepository, cache *cache.Client, uploadDir string, log zerolog.Logger) ContentService {
	return &contentService{
		repo:      repo,
		cache:     cache,
		uploadDir: uploadDir,
		log:       log,
	}
}

func (s *contentService) listCacheKey(filter repository.ContentFilter) string {
	return fmt.Sprintf("content:list:%s:%d", filter.Type, filter.ChapterID)
}

// List returns content matching the filter, newest first, cached briefly.
func (s *contentService) List(ctx context.Context, filter repository.ContentFilter) ([]model.ContentItem, error) {
	key := s.listCacheKey(filter)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.ContentItem
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	if payload, err := json.Marshal(items); err == nil {
		_ = s.cache.Set(ctx, key, payload, contentCacheTTL)
	}
	return items, nil
}

// Create stores the item, saving the uploaded file first when present.
func (s *contentService) Create(ctx context.Context, input CreateContentInput) (*model.ContentItem, error) {
	item := &model.ContentItem{
		Title:     input.Title,
		Type:      input.Type,
		Content:   input.Content,
		ChapterID: input.ChapterID,
		IsPremium: input.IsPremium,
	}

	if input.File != nil {
		fileURL, err := s.saveFile(input.FileName, input.File)
		if err != nil {
			return nil, fmt.Errorf("save upload: %w", err)
		}
		item.FileURL = fileURL
	}

	if err := s.repo.Create(ctx, item); err != nil {
		// The row failed; don't leave the file orphaned.
		s.removeFile(item.FileURL)
		return nil, fmt.Errorf("create content: %w", err)
	}

	s.invalidateListings(ctx)
	return item, nil
}

// Delete removes the row, then best-effort removes the associated file. A
// missing or already-deleted file never fails the delete.
func (s *contentService) Delete(ctx context.Context, id uint) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrContentNotFound
		}
		return fmt.Errorf("find content: %w", err)
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrContentNotFound
	}

	s.removeFile(item.FileURL)
	s.invalidateListings(ctx)
	return nil
}

// saveFile writes the upload under a fresh name and returns its public URL.
func (s *contentService) saveFile(originalName string, src io.Reader) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + filepath.Ext(originalName)
	dst, err := os.Create(filepath.Join(s.uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

func (s *contentService) removeFile(fileURL string) {
	if fileURL == "" {
		return
	}
	path := filepath.Join(s.uploadDir, filepath.Base(fileURL))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("path", path).Msg("failed to delete content file")
	}
}

func (s *contentService) invalidateListings(ctx context.Context) {
	_ = s.cache.DeletePattern(ctx, "content:list:*")
}
