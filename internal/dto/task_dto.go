package dto

import (
	"time"

	"github.com/voltclass/labtrack-api/internal/models"
)

// NameResolver maps a user identifier to a display name. Implementations
// must return a fallback label for dangling references.
type NameResolver func(id uint) string

// TaskCreateRequest carries the fields for creating a task.
type TaskCreateRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=research experiment analysis documentation presentation"`
	BatteryType string `json:"battery_type" validate:"omitempty,oneof=lithium-ion lead-acid nickel-cadmium alkaline"`
	Priority    string `json:"priority" validate:"required,oneof=low medium high urgent"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02"`
	AssignedTo  []uint `json:"assigned_to"`
}

// TaskUpdateRequest captures a partial task update; nil fields stay unchanged.
type TaskUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Category    *string `json:"category" validate:"omitempty,oneof=research experiment analysis documentation presentation"`
	BatteryType *string `json:"battery_type" validate:"omitempty,oneof=lithium-ion lead-acid nickel-cadmium alkaline"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in-progress completed review"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Progress    *int    `json:"progress" validate:"omitempty,gte=0,lte=100"`
	AssignedTo  []uint  `json:"assigned_to"`
}

// TaskCommentRequest carries a new comment for a task.
type TaskCommentRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// CommentResponse serializes a task comment with its author resolved.
type CommentResponse struct {
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// AttachmentResponse serializes a task attachment.
type AttachmentResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TaskResponse serializes a task with referenced users resolved to names.
type TaskResponse struct {
	ID            uint                 `json:"id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Category      string               `json:"category"`
	BatteryType   string               `json:"battery_type,omitempty"`
	Priority      string               `json:"priority"`
	Status        string               `json:"status"`
	DueDate       string               `json:"due_date"`
	Progress      int                  `json:"progress"`
	AssignedTo    []uint               `json:"assigned_to"`
	AssignedNames []string             `json:"assigned_names"`
	CreatedBy     uint                 `json:"created_by"`
	CreatedByName string               `json:"created_by_name"`
	Comments      []CommentResponse    `json:"comments"`
	Attachments   []AttachmentResponse `json:"attachments"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// NewTaskResponse converts a task model into a DTO, resolving user
// references through the supplied resolver.
func NewTaskResponse(task models.Task, resolve NameResolver) TaskResponse {
	assignedNames := make([]string, 0, len(task.AssignedTo))
	for _, id := range task.AssignedTo {
		assignedNames = append(assignedNames, resolve(id))
	}

	comments := make([]CommentResponse, 0, len(task.Comments))
	for _, comment := range task.Comments {
		comments = append(comments, CommentResponse{
			AuthorID:   comment.AuthorID,
			AuthorName: resolve(comment.AuthorID),
			Text:       comment.Text,
			CreatedAt:  comment.CreatedAt,
		})
	}

	attachments := make([]AttachmentResponse, 0, len(task.Attachments))
	for _, attachment := range task.Attachments {
		attachments = append(attachments, AttachmentResponse{Name: attachment.Name, URL: attachment.URL})
	}

	return TaskResponse{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Category:      task.Category,
		BatteryType:   task.BatteryType,
		Priority:      task.Priority,
		Status:        task.Status,
		DueDate:       task.DueDate,
		Progress:      task.Progress,
		AssignedTo:    append([]uint(nil), task.AssignedTo...),
		AssignedNames: assignedNames,
		CreatedBy:     task.CreatedBy,
		CreatedByName: resolve(task.CreatedBy),
		Comments:      comments,
		Attachments:   attachments,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

// TaskListResponse wraps a list of tasks.
type TaskListResponse struct {
	Items []TaskResponse `json:"items"`
	Total int            `json:"total"`
}
