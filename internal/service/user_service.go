package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/voltclass/labtrack-api/internal/dto"
	"github.com/voltclass/labtrack-api/internal/models"
	"github.com/voltclass/labtrack-api/internal/repository"
)

// ErrUserNotFound indicates the user is absent from the collection.
var ErrUserNotFound = errors.New("user not found")

// UserService exposes the admin user management operations.
type UserService interface {
	List(ctx context.Context) (dto.UserListResponse, error)
	Get(ctx context.Context, id uint) (dto.UserProfile, error)
	Update(ctx context.Context, id uint, req dto.AdminUserUpdateRequest, actor ActivityActor) (dto.UserProfile, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type userService struct {
	users     repository.UserRepository
	activity  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserService constructs the user management service.
func NewUserService(users repository.UserRepository, activity ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		users:     users,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) List(ctx context.Context) (dto.UserListResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return dto.UserListResponse{}, err
	}

	items := make([]dto.UserProfile, 0, len(users))
	for _, user := range users {
		items = append(items, dto.NewUserProfile(user))
	}
	return dto.UserListResponse{Items: items, Total: len(items)}, nil
}

func (s *userService) Get(ctx context.Context, id uint) (dto.UserProfile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.UserProfile{}, ErrUserNotFound
		}
		return dto.UserProfile{}, err
	}
	return dto.NewUserProfile(user), nil
}

func (s *userService) Update(ctx context.Context, id uint, req dto.AdminUserUpdateRequest, actor ActivityActor) (dto.UserProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.UserProfile{}, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.UserProfile{}, ErrUserNotFound
		}
		return dto.UserProfile{}, err
	}

	statusChanged := false
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Group != nil {
		user.Group = *req.Group
	}
	if req.IsActive != nil && user.IsActive != *req.IsActive {
		user.IsActive = *req.IsActive
		statusChanged = true
	}

	user, err = s.users.Save(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.UserProfile{}, ErrUserNotFound
		}
		return dto.UserProfile{}, err
	}

	if s.activity != nil {
		entry := ActivityEntry{
			Type:        models.ActivityUserUpdated,
			Title:       "User updated",
			Description: fmt.Sprintf("%s updated account for %s", actor.Name, user.FullName),
			UserID:      actor.ID,
		}
		if statusChanged {
			verb := "deactivated"
			if user.IsActive {
				verb = "activated"
			}
			entry = ActivityEntry{
				Type:        models.ActivityUserStatusChanged,
				Title:       "User status changed",
				Description: fmt.Sprintf("%s %s account for %s", actor.Name, verb, user.FullName),
				UserID:      actor.ID,
			}
		}
		_, _ = s.activity.Record(ctx, entry)
	}

	return dto.NewUserProfile(user), nil
}

// Delete removes the user record. References from tasks and reports are
// left in place and resolve to the unknown-user label when rendered.
func (s *userService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if s.activity != nil {
		_, _ = s.activity.Record(ctx, ActivityEntry{
			Type:        models.ActivityUserDeleted,
			Title:       "User deleted",
			Description: fmt.Sprintf("%s deleted account for %s", actor.Name, user.FullName),
			UserID:      actor.ID,
		})
	}

	return nil
}
