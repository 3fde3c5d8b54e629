package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/voltclass/labtrack-api/internal/dto"
	"github.com/voltclass/labtrack-api/internal/models"
	"github.com/voltclass/labtrack-api/internal/repository"
)

// StatsService aggregates the classroom statistics for the dashboard.
type StatsService interface {
	Summary(ctx context.Context) (dto.StatsResponse, error)
}

type statsService struct {
	users    repository.UserRepository
	tasks    repository.TaskRepository
	reports  repository.ReportRepository
	cache    *redis.Client
	cacheTTL time.Duration
	tracer   trace.Tracer
	logger   zerolog.Logger
	now      func() time.Time
}

// NewStatsService constructs the statistics service. The cache client may
// be nil, in which case every call aggregates from the repositories.
func NewStatsService(users repository.UserRepository, tasks repository.TaskRepository, reports repository.ReportRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) StatsService {
	return &statsService{
		users:    users,
		tasks:    tasks,
		reports:  reports,
		cache:    cache,
		cacheTTL: ttl,
		tracer:   otel.Tracer("github.com/voltclass/labtrack-api/internal/service/stats"),
		logger:   logger.With().Str("component", "stats_service").Logger(),
		now:      time.Now,
	}
}

func (s *statsService) Summary(ctx context.Context) (dto.StatsResponse, error) {
	const cacheKey = "stats:summary"
	ctx, span := s.tracer.Start(ctx, "stats.aggregate")
	span.SetAttributes(attribute.String("stats.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.StatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("stats.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read stats cache")
			span.RecordError(err)
		}
	}

	users, err := s.users.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_users_failed")
		return dto.StatsResponse{}, err
	}

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_tasks_failed")
		return dto.StatsResponse{}, err
	}

	reports, err := s.reports.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_reports_failed")
		return dto.StatsResponse{}, err
	}

	summary := s.buildSummary(users, tasks, reports)
	span.SetAttributes(
		attribute.Int("stats.total_users", summary.TotalUsers),
		attribute.Int("stats.total_tasks", summary.TotalTasks),
	)

	if s.cache != nil {
		payload, err := json.Marshal(summary)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store stats cache")
				span.RecordError(err)
			}
		}
	}

	return summary, nil
}

func (s *statsService) buildSummary(users []models.User, tasks []models.Task, reports []models.Report) dto.StatsResponse {
	active := 0
	for _, user := range users {
		if user.IsActive {
			active++
		}
	}

	completed := 0
	pending := 0
	progressSum := 0
	for _, task := range tasks {
		switch task.Status {
		case models.TaskStatusCompleted:
			completed++
		case models.TaskStatusPending:
			pending++
		}
		progressSum += task.Progress
	}

	totalProgress := 0
	if len(tasks) > 0 {
		totalProgress = int(math.Round(float64(progressSum) / float64(len(tasks))))
	}

	return dto.StatsResponse{
		TotalUsers:     len(users),
		ActiveUsers:    active,
		TotalTasks:     len(tasks),
		CompletedTasks: completed,
		PendingTasks:   pending,
		TotalReports:   len(reports),
		TotalProgress:  totalProgress,
		GeneratedAt:    s.now(),
		CacheHit:       false,
	}
}
