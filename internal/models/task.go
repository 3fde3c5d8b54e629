package models

import "time"

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Task statuses.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
	TaskStatusReview     = "review"
)

// Comment is a remark left on a task.
type Comment struct {
	AuthorID  uint      `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Attachment references supplementary material linked to a task.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Task is a unit of project work assigned to students.
type Task struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	BatteryType string       `json:"battery_type,omitempty"`
	Priority    string       `json:"priority"`
	Status      string       `json:"status"`
	DueDate     string       `json:"due_date"`
	Progress    int          `json:"progress"`
	AssignedTo  []uint       `json:"assigned_to"`
	CreatedBy   uint         `json:"created_by"`
	Comments    []Comment    `json:"comments"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
