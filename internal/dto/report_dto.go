package dto

import (
	"time"

	"github.com/voltclass/labtrack-api/internal/models"
)

// BatteryDataPayload carries optional experiment measurements.
type BatteryDataPayload struct {
	Voltage     *float64 `json:"voltage" validate:"omitempty,gte=0"`
	Capacity    *float64 `json:"capacity" validate:"omitempty,gte=0"`
	Temperature *float64 `json:"temperature"`
	Efficiency  *float64 `json:"efficiency" validate:"omitempty,gte=0,lte=100"`
}

// ReportCreateRequest carries the fields for creating a report.
type ReportCreateRequest struct {
	Title          string              `json:"title" validate:"required,min=3,max=255"`
	Type           string              `json:"type" validate:"required,oneof=weekly experiment analysis final"`
	Content        string              `json:"content" validate:"required"`
	Group          string              `json:"group" validate:"required,max=64"`
	ExperimentDate string              `json:"experiment_date" validate:"omitempty,datetime=2006-01-02"`
	BatteryData    *BatteryDataPayload `json:"battery_data"`
}

// ReportUpdateRequest captures a partial report update; nil fields stay unchanged.
type ReportUpdateRequest struct {
	Title          *string             `json:"title" validate:"omitempty,min=3,max=255"`
	Type           *string             `json:"type" validate:"omitempty,oneof=weekly experiment analysis final"`
	Content        *string             `json:"content" validate:"omitempty,min=1"`
	Group          *string             `json:"group" validate:"omitempty,max=64"`
	ExperimentDate *string             `json:"experiment_date" validate:"omitempty,datetime=2006-01-02"`
	BatteryData    *BatteryDataPayload `json:"battery_data"`
}

// ReportReviewRequest carries the reviewer's verdict.
type ReportReviewRequest struct {
	Comments string `json:"comments" validate:"omitempty,max=5000"`
}

// ReportResponse serializes a report with referenced users resolved.
type ReportResponse struct {
	ID             uint                `json:"id"`
	Title          string              `json:"title"`
	Type           string              `json:"type"`
	Content        string              `json:"content"`
	Group          string              `json:"group"`
	ExperimentDate string              `json:"experiment_date,omitempty"`
	BatteryData    *models.BatteryData `json:"battery_data,omitempty"`
	Status         string              `json:"status"`
	ReviewedBy     *uint               `json:"reviewed_by,omitempty"`
	ReviewerName   string              `json:"reviewer_name,omitempty"`
	ReviewComments string              `json:"review_comments,omitempty"`
	CreatedBy      uint                `json:"created_by"`
	AuthorName     string              `json:"author_name"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// NewReportResponse converts a report model into a DTO, resolving user
// references through the supplied resolver.
func NewReportResponse(report models.Report, resolve NameResolver) ReportResponse {
	response := ReportResponse{
		ID:             report.ID,
		Title:          report.Title,
		Type:           report.Type,
		Content:        report.Content,
		Group:          report.Group,
		ExperimentDate: report.ExperimentDate,
		BatteryData:    report.BatteryData,
		Status:         report.Status,
		ReviewedBy:     report.ReviewedBy,
		ReviewComments: report.ReviewComments,
		CreatedBy:      report.CreatedBy,
		AuthorName:     resolve(report.CreatedBy),
		CreatedAt:      report.CreatedAt,
		UpdatedAt:      report.UpdatedAt,
	}
	if report.ReviewedBy != nil {
		response.ReviewerName = resolve(*report.ReviewedBy)
	}
	return response
}

// ReportListResponse wraps a list of reports.
type ReportListResponse struct {
	Items []ReportResponse `json:"items"`
	Total int              `json:"total"`
}
