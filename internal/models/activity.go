package models

import "time"

// Activity event types.
const (
	ActivityUserLogin         = "user_login"
	ActivityUserLogout        = "user_logout"
	ActivityUserRegistered    = "user_registered"
	ActivityUserUpdated       = "user_updated"
	ActivityUserStatusChanged = "user_status_changed"
	ActivityUserDeleted       = "user_deleted"
	ActivityTaskCreated       = "task_created"
	ActivityTaskUpdated       = "task_updated"
	ActivityTaskDeleted       = "task_deleted"
	ActivityReportCreated     = "report_created"
	ActivityReportSubmitted   = "report_submitted"
	ActivityReportReviewed    = "report_reviewed"
)

// Activity is an append-only audit entry describing a user-triggered event.
type Activity struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      uint      `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}
