package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"learnhub/internal/auth"
	"learnhub/internal/cache"
	apperrors "learnhub/internal/errors"
	"learnhub/internal/model"
	"learnhub/internal/repository"
)

const statsCacheTTL = 30 * time.Second

// User-control actions accepted by ControlUser.
const (
	ActionSuspend       = "suspend"
	ActionDelete        = "delete"
	ActionResetPassword = "reset_password"
)

// tempPassword is the fixed temporary password set by reset_password and
// returned to the calling admin.
const tempPassword = "temp123"

// Stats are the headline totals for the admin stats endpoint.
type Stats struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalProgress   int64 `json:"totalProgress"`
	AverageProgress int   `json:"averageProgress"`
}

// Dashboard aggregates the admin overview in one response.
type Dashboard struct {
	TotalUsers          int64                        `json:"totalUsers"`
	TotalAdmins         int64                        `json:"totalAdmins"`
	TotalContent        int64                        `json:"totalContent"`
	TotalActivities     int64                        `json:"totalActivities"`
	RecentActivities    []repository.ActivityRow     `json:"recentActivities"`
	ActiveSessions      []repository.SessionRow      `json:"activeSessions"`
	SystemLogs          []model.SystemLog            `json:"systemLogs"`
	UserProgressSummary []repository.ProgressSummary `json:"userProgressSummary"`
}

// ControlResult reports the outcome of a user-control action.
type ControlResult struct {
	Message     string `json:"message"`
	NewPassword string `json:"newPassword,omitempty"`
}

// AdminService serves the read-only admin views and user control actions.
type AdminService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	Stats(ctx context.Context) (*Stats, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
	Activities(ctx context.Context, userID uint, limit int) ([]repository.ActivityRow, error)
	SystemLogs(ctx context.Context, level string, limit int) ([]model.SystemLog, error)
	ActiveSessions(ctx context.Context) ([]repository.SessionRow, error)
	ControlUser(ctx context.Context, userID uint, action string) (*ControlResult, error)
}

type adminService struct {
	userRepo     repository.UserRepository
	adminRepo    repository.AdminRepository
	contentRepo  repository.ContentRepository
	progressRepo repository.ProgressRepository
	activityRepo repository.ActivityRepository
	sessionRepo  repository.SessionRepository
	cache        *cache.Client
}

// NewAdminService creates a new admin service.
func NewAdminService(
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	contentRepo repository.ContentRepository,
	progressRepo repository.ProgressRepository,
	activityRepo repository.ActivityRepository,
	sessionRepo repository.SessionRepository,
	cache *cache.Client,
) AdminService {
	return &adminService{
		userRepo:     userRepo,
		adminRepo:    adminRepo,
		contentRepo:  contentRepo,
		progressRepo: progressRepo,
		activityRepo: activityRepo,
		sessionRepo:  sessionRepo,
		cache:        cache,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Stats returns headline totals, cached briefly.
func (s *adminService) Stats(ctx context.Context) (*Stats, error) {
	const key = "admin:stats"
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached Stats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	var stats Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.TotalUsers, err = s.userRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalProgress, err = s.progressRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		avg, err := s.progressRepo.Average(gctx)
		stats.AverageProgress = int(math.Round(avg))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}

	if payload, err := json.Marshal(&stats); err == nil {
		_ = s.cache.Set(ctx, key, payload, statsCacheTTL)
	}
	return &stats, nil
}

// Dashboard fans out the independent sub-queries concurrently and joins them
// before responding; no ordering dependency exists between them.
func (s *adminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.TotalUsers, err = s.userRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		d.TotalAdmins, err = s.adminRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		d.TotalContent, err = s.contentRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		d.TotalActivities, err = s.activityRepo.CountActivities(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		d.RecentActivities, err = s.activityRepo.ListActivities(gctx, 0, 10)
		return err
	})
	g.Go(func() error {
		var err error
		d.ActiveSessions, err = s.sessionRepo.ListActive(gctx, 10)
		return err
	})
	g.Go(func() error {
		var err error
		d.SystemLogs, err = s.activityRepo.ListSystemLogs(gctx, "", 20)
		return err
	})
	g.Go(func() error {
		var err error
		d.UserProgressSummary, err = s.progressRepo.SummaryByUser(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch dashboard: %w", err)
	}
	return &d, nil
}

func (s *adminService) Activities(ctx context.Context, userID uint, limit int) ([]repository.ActivityRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.activityRepo.ListActivities(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return rows, nil
}

func (s *adminService) SystemLogs(ctx context.Context, level string, limit int) ([]model.SystemLog, error) {
	if limit <= 0 {
		limit = 100
	}
	logs, err := s.activityRepo.ListSystemLogs(ctx, level, limit)
	if err != nil {
		return nil, fmt.Errorf("list system logs: %w", err)
	}
	return logs, nil
}

func (s *adminService) ActiveSessions(ctx context.Context) ([]repository.SessionRow, error) {
	rows, err := s.sessionRepo.ListActive(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return rows, nil
}

// ControlUser applies an administrative action to a user account.
func (s *adminService) ControlUser(ctx context.Context, userID uint, action string) (*ControlResult, error) {
	switch action {
	case ActionSuspend:
		if err := s.userRepo.SetSuspended(ctx, userID, true); err != nil {
			return nil, fmt.Errorf("suspend user: %w", err)
		}
		return &ControlResult{Message: "User suspended successfully"}, nil

	case ActionDelete:
		affected, err := s.userRepo.Delete(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("delete user: %w", err)
		}
		if affected == 0 {
			return nil, apperrors.ErrUserNotFound
		}
		return &ControlResult{Message: "User deleted successfully"}, nil

	case ActionResetPassword:
		if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, fmt.Errorf("find user: %w", err)
		}
		hash, err := auth.HashPassword(tempPassword)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
			return nil, fmt.Errorf("reset password: %w", err)
		}
		return &ControlResult{Message: "Password reset successfully", NewPassword: tempPassword}, nil

	default:
		return nil, apperrors.ErrInvalidAction
	}
}
