package dto

import (
	"time"

	"github.com/voltclass/labtrack-api/internal/models"
)

// ActivityResponse serializes a feed entry with its actor resolved.
type ActivityResponse struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      uint      `json:"user_id"`
	ActorName   string    `json:"actor_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewActivityResponse converts an activity model into a DTO.
func NewActivityResponse(activity models.Activity, resolve NameResolver) ActivityResponse {
	return ActivityResponse{
		ID:          activity.ID,
		Type:        activity.Type,
		Title:       activity.Title,
		Description: activity.Description,
		UserID:      activity.UserID,
		ActorName:   resolve(activity.UserID),
		CreatedAt:   activity.CreatedAt,
	}
}

// ActivityListResponse wraps a list of feed entries.
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
}
