package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"learnhub/internal/model"
	"learnhub/internal/repository"
)

// System log levels.
const (
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

const recordTimeout = 5 * time.Second

// Recorder is the fire-and-forget audit trail. Calls return immediately;
// insert failures go to the process log and are never surfaced to callers.
type Recorder interface {
	Activity(userID uint, action, details, ip, userAgent string)
	System(level, message, details string)
}

type recorder struct {
	repo repository.ActivityRepository
	log  zerolog.Logger
}

// NewRecorder creates the audit recorder.
func NewRecorder(repo repository.ActivityRepository, log zerolog.Logger) Recorder {
	return &recorder{repo: repo, log: log}
}

func (r *recorder) Activity(userID uint, action, details, ip, userAgent string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		err := r.repo.CreateActivity(ctx, &model.UserActivity{
			UserID:    userID,
			Action:    action,
			Details:   details,
			IPAddress: ip,
			UserAgent: userAgent,
		})
		if err != nil {
			r.log.Warn().Err(err).Uint("user_id", userID).Str("action", action).
				Msg("failed to record user activity")
		}
	}()
}

func (r *recorder) System(level, message, details string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		err := r.repo.CreateSystemLog(ctx, &model.SystemLog{
			Level:   level,
			Message: message,
			Details: details,
		})
		if err != nil {
			r.log.Warn().Err(err).Str("level", level).Msg("failed to record system log")
		}
	}()
}
