package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/voltclass/labtrack-api/internal/dto"
	"github.com/voltclass/labtrack-api/internal/models"
	"github.com/voltclass/labtrack-api/internal/repository"
)

// Authentication and registration failure causes, each surfaced to the
// client with its own message.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
)

// AuthService handles login, registration and logout.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.SessionResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (dto.UserProfile, error)
	Logout(ctx context.Context, actor ActivityActor) error
}

type authService struct {
	users     repository.UserRepository
	sessions  *SessionManager
	activity  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthService constructs the authentication service.
func NewAuthService(users repository.UserRepository, sessions *SessionManager, activity ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		sessions:  sessions,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.SessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SessionResponse{}, err
	}

	user, err := s.users.GetByUsernameOrEmail(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.SessionResponse{}, ErrInvalidCredentials
		}
		return dto.SessionResponse{}, err
	}

	if !user.IsActive {
		return dto.SessionResponse{}, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return dto.SessionResponse{}, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLogin = &now
	if user, err = s.users.Save(ctx, user); err != nil {
		return dto.SessionResponse{}, err
	}

	if s.activity != nil {
		_, _ = s.activity.Record(ctx, ActivityEntry{
			Type:        models.ActivityUserLogin,
			Title:       "User logged in",
			Description: fmt.Sprintf("%s logged into the system", user.FullName),
			UserID:      user.ID,
		})
	}

	profile := dto.NewUserProfile(user)
	token, err := s.sessions.Issue(profile)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("user authenticated")
	return dto.SessionResponse{Token: token, User: profile}, nil
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (dto.UserProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.UserProfile{}, err
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if existing, err := s.users.GetByUsernameOrEmail(ctx, username); err == nil && strings.EqualFold(existing.Username, username) {
		return dto.UserProfile{}, ErrUsernameTaken
	}
	if _, err := s.users.GetByUsernameOrEmail(ctx, email); err == nil {
		return dto.UserProfile{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserProfile{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Role:         req.Role,
		Group:        strings.TrimSpace(req.Group),
		IsActive:     true,
	})
	if err != nil {
		return dto.UserProfile{}, err
	}

	if s.activity != nil {
		_, _ = s.activity.Record(ctx, ActivityEntry{
			Type:        models.ActivityUserRegistered,
			Title:       "New user registered",
			Description: fmt.Sprintf("%s joined as %s", user.FullName, user.Role),
			UserID:      user.ID,
		})
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	return dto.NewUserProfile(user), nil
}

func (s *authService) Logout(ctx context.Context, actor ActivityActor) error {
	if actor.ID == 0 {
		return nil
	}

	if s.activity != nil {
		_, _ = s.activity.Record(ctx, ActivityEntry{
			Type:        models.ActivityUserLogout,
			Title:       "User logged out",
			Description: fmt.Sprintf("%s logged out of the system", actor.Name),
			UserID:      actor.ID,
		})
	}

	return nil
}
