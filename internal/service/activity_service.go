package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/voltclass/labtrack-api/internal/dto"
	"github.com/voltclass/labtrack-api/internal/models"
	"github.com/voltclass/labtrack-api/internal/observability"
	"github.com/voltclass/labtrack-api/internal/repository"
)

// Default and maximum sizes for the recent activity feed.
const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

// ActivityEntry captures the details required to persist a feed entry.
type ActivityEntry struct {
	Type        string
	Title       string
	Description string
	UserID      uint
}

// ActivityRecorder defines behaviour for recording feed entries.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry) (models.Activity, error)
}

// ActivityService exposes the append-only activity feed.
type ActivityService interface {
	ActivityRecorder
	Recent(ctx context.Context, limit int) (dto.ActivityListResponse, error)
}

type activityService struct {
	repo   repository.ActivityRepository
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewActivityService constructs the activity feed service.
func NewActivityService(repo repository.ActivityRepository, users repository.UserRepository, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:   repo,
		users:  users,
		logger: logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) Record(ctx context.Context, entry ActivityEntry) (models.Activity, error) {
	if strings.TrimSpace(entry.Type) == "" {
		return models.Activity{}, fmt.Errorf("activity type is required")
	}
	if strings.TrimSpace(entry.Title) == "" {
		return models.Activity{}, fmt.Errorf("activity title is required")
	}

	activity, err := s.repo.Append(ctx, models.Activity{
		Type:        entry.Type,
		Title:       entry.Title,
		Description: entry.Description,
		UserID:      entry.UserID,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("type", entry.Type).Msg("failed to persist activity entry")
		return models.Activity{}, err
	}

	observability.ActivityEntries().Inc()
	return activity, nil
}

func (s *activityService) Recent(ctx context.Context, limit int) (dto.ActivityListResponse, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	} else if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	entries, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return dto.ActivityListResponse{}, err
	}

	resolve := nameResolver(ctx, s.users)
	items := make([]dto.ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewActivityResponse(entry, resolve))
	}

	return dto.ActivityListResponse{Items: items}, nil
}
