package dto

import "time"

// StatsResponse aggregates the collection counters shown on the dashboard.
// TotalProgress is the mean task progress rounded to the nearest integer,
// zero when no tasks exist.
type StatsResponse struct {
	TotalUsers     int       `json:"total_users"`
	ActiveUsers    int       `json:"active_users"`
	TotalTasks     int       `json:"total_tasks"`
	CompletedTasks int       `json:"completed_tasks"`
	PendingTasks   int       `json:"pending_tasks"`
	TotalReports   int       `json:"total_reports"`
	TotalProgress  int       `json:"total_progress"`
	GeneratedAt    time.Time `json:"generated_at"`
	CacheHit       bool      `json:"cache_hit"`
}

// DashboardResponse composes the dashboard page payload.
type DashboardResponse struct {
	Stats          StatsResponse      `json:"stats"`
	UpcomingTasks  []TaskResponse     `json:"upcoming_tasks"`
	RecentActivity []ActivityResponse `json:"recent_activity"`
}
