package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/voltclass/labtrack-api/internal/dto"
)

// Dashboard composition limits.
const (
	upcomingTaskLimit   = 5
	recentActivityLimit = 5
)

// DashboardService composes the landing page payload from the other
// services.
type DashboardService interface {
	Overview(ctx context.Context, viewer ActivityActor) (dto.DashboardResponse, error)
}

type dashboardService struct {
	stats    StatsService
	tasks    TaskService
	activity ActivityService
	logger   zerolog.Logger
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(stats StatsService, tasks TaskService, activity ActivityService, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		stats:    stats,
		tasks:    tasks,
		activity: activity,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Overview(ctx context.Context, viewer ActivityActor) (dto.DashboardResponse, error) {
	stats, err := s.stats.Summary(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	upcoming, err := s.tasks.Upcoming(ctx, upcomingTaskLimit)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	recent, err := s.activity.Recent(ctx, recentActivityLimit)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	return dto.DashboardResponse{
		Stats:          stats,
		UpcomingTasks:  upcoming,
		RecentActivity: recent.Items,
	}, nil
}
