package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"learnhub/internal/auth"
	apperrors "learnhub/internal/errors"
	"learnhub/internal/model"
	"learnhub/internal/repository"
)

// RequestMeta carries the request attributes the audit trail records.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// AuthService handles signup, login and admin login.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string, meta RequestMeta) (*model.User, string, error)
	AdminLogin(ctx context.Context, email, password string) (*model.AdminUser, string, error)
	// EnsureAdmin seeds the bootstrap admin through the regular create path
	// if no admin with that email exists yet.
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

type authService struct {
	userRepo    repository.UserRepository
	adminRepo   repository.AdminRepository
	sessionRepo repository.SessionRepository
	jwtService  *auth.JWTService
	recorder    Recorder
	log         zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	sessionRepo repository.SessionRepository,
	jwtService *auth.JWTService,
	recorder Recorder,
	log zerolog.Logger,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		adminRepo:   adminRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		recorder:    recorder,
		log:         log,
	}
}

// Signup creates a new user with a hashed password and returns a session token.
func (s *authService) Signup(ctx context.Context, username, email, password string) (*model.User, string, error) {
	existing, err := s.userRepo.FindByEmailOrUsername(ctx, email, username)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrUserExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.Email, "")
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and returns a session token. Unknown email and
// wrong password produce the same error so the response does not reveal
// whether the account exists.
func (s *authService) Login(ctx context.Context, email, password string, meta RequestMeta) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.recorder.System(LevelWarning, fmt.Sprintf("Failed login attempt for email: %s", email), "IP: "+meta.IP)
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		s.recorder.System(LevelWarning, fmt.Sprintf("Failed login attempt for user: %s", user.Username), "IP: "+meta.IP)
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.Email, "")
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	s.recorder.Activity(user.ID, "LOGIN", "User logged in from IP: "+meta.IP, meta.IP, meta.UserAgent)
	s.recordSession(ctx, user.ID, meta)

	return user, token, nil
}

// recordSession writes the session row for the admin sessions view.
// Best-effort: a failure is logged and the login still succeeds.
func (s *authService) recordSession(ctx context.Context, userID uint, meta RequestMeta) {
	err := s.sessionRepo.Create(ctx, &model.UserSession{
		UserID:    userID,
		TokenID:   uuid.New().String(),
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
		ExpiresAt: time.Now().Add(auth.TokenTTL),
	})
	if err != nil {
		s.log.Warn().Err(err).Uint("user_id", userID).Msg("failed to record session")
	}
}

// AdminLogin verifies admin credentials and returns a token carrying the
// admin role claim.
func (s *authService) AdminLogin(ctx context.Context, email, password string) (*model.AdminUser, string, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.ErrInvalidAdminCredentials
	}

	if !auth.CheckPassword(password, admin.PasswordHash) {
		return nil, "", apperrors.ErrInvalidAdminCredentials
	}

	token, err := s.jwtService.GenerateToken(admin.ID, admin.Username, admin.Email, auth.RoleAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return admin, token, nil
}

// EnsureAdmin creates the bootstrap admin if absent. It goes through the
// same hashing and repository path as any other admin; there is no in-code
// credential bypass.
func (s *authService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	_, err := s.adminRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check admin existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if err := s.adminRepo.Create(ctx, &model.AdminUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.log.Info().Str("email", email).Msg("bootstrap admin created")
	return nil
}
