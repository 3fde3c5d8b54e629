package models

import "time"

// Report types.
const (
	ReportTypeWeekly     = "weekly"
	ReportTypeExperiment = "experiment"
	ReportTypeAnalysis   = "analysis"
	ReportTypeFinal      = "final"
)

// Report statuses.
const (
	ReportStatusDraft     = "draft"
	ReportStatusSubmitted = "submitted"
	ReportStatusApproved  = "approved"
)

// BatteryData captures structured measurements attached to an experiment report.
type BatteryData struct {
	Voltage     *float64 `json:"voltage,omitempty"`
	Capacity    *float64 `json:"capacity,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Efficiency  *float64 `json:"efficiency,omitempty"`
}

// Report is a written deliverable submitted by a group or student.
type Report struct {
	ID             uint         `json:"id"`
	Title          string       `json:"title"`
	Type           string       `json:"type"`
	Content        string       `json:"content"`
	Group          string       `json:"group"`
	ExperimentDate string       `json:"experiment_date,omitempty"`
	BatteryData    *BatteryData `json:"battery_data,omitempty"`
	Status         string       `json:"status"`
	ReviewedBy     *uint        `json:"reviewed_by,omitempty"`
	ReviewComments string       `json:"review_comments,omitempty"`
	CreatedBy      uint         `json:"created_by"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
