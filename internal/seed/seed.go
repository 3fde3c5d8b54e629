// Package seed provides the built-in demo records used to populate a
// collection whose stored blob is absent or unreadable.
package seed

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/voltclass/labtrack-api/internal/models"
)

// Default demo credentials. Only the bcrypt digests are persisted.
const (
	AdminPassword   = "admin123"
	TeacherPassword = "teacher123"
	StudentPassword = "student123"
)

// Users returns the default demo accounts.
func Users(now time.Time) []models.User {
	return []models.User{
		{
			ID:           1,
			Username:     "admin",
			Email:        "admin@project.com",
			PasswordHash: mustHash(AdminPassword),
			FullName:     "System Administrator",
			Role:         models.RoleAdmin,
			Group:        "Administration",
			IsActive:     true,
			CreatedAt:    now,
		},
		{
			ID:           2,
			Username:     "teacher",
			Email:        "teacher@project.com",
			PasswordHash: mustHash(TeacherPassword),
			FullName:     "Chemistry Teacher",
			Role:         models.RoleTeacher,
			Group:        "Faculty",
			IsActive:     true,
			CreatedAt:    now,
		},
		{
			ID:           3,
			Username:     "student",
			Email:        "student@project.com",
			PasswordHash: mustHash(StudentPassword),
			FullName:     "Chemistry Student",
			Role:         models.RoleStudent,
			Group:        "Group A",
			IsActive:     true,
			CreatedAt:    now,
		},
	}
}

// Tasks returns the default demo tasks.
func Tasks(now time.Time) []models.Task {
	due := func(days int) string {
		return now.AddDate(0, 0, days).Format("2006-01-02")
	}

	return []models.Task{
		{
			ID:          1,
			Title:       "Research lithium-ion battery chemistry",
			Description: "Conduct literature review on lithium-ion battery technology",
			Category:    "research",
			BatteryType: "lithium-ion",
			Priority:    models.PriorityHigh,
			Status:      models.TaskStatusInProgress,
			DueDate:     due(5),
			Progress:    75,
			AssignedTo:  []uint{3},
			CreatedBy:   2,
			Comments:    []models.Comment{},
			Attachments: []models.Attachment{},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          2,
			Title:       "Measure discharge curves",
			Description: "Record voltage over time for the lead-acid sample set",
			Category:    "experiment",
			BatteryType: "lead-acid",
			Priority:    models.PriorityMedium,
			Status:      models.TaskStatusPending,
			DueDate:     due(10),
			Progress:    0,
			AssignedTo:  []uint{3},
			CreatedBy:   2,
			Comments:    []models.Comment{},
			Attachments: []models.Attachment{},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          3,
			Title:       "Prepare capacity comparison slides",
			Description: "Summarize capacity results across battery types for the group presentation",
			Category:    "presentation",
			Priority:    models.PriorityLow,
			Status:      models.TaskStatusPending,
			DueDate:     due(14),
			Progress:    0,
			AssignedTo:  []uint{},
			CreatedBy:   2,
			Comments:    []models.Comment{},
			Attachments: []models.Attachment{},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

// Reports returns the default demo reports.
func Reports(now time.Time) []models.Report {
	voltage := 3.7
	capacity := 2600.0

	return []models.Report{
		{
			ID:             1,
			Title:          "Week 1 progress",
			Type:           models.ReportTypeWeekly,
			Content:        "Completed the literature review and set up the first discharge experiment.",
			Group:          "Group A",
			Status:         models.ReportStatusSubmitted,
			CreatedBy:      3,
			CreatedAt:      now,
			UpdatedAt:      now,
			ExperimentDate: now.Format("2006-01-02"),
			BatteryData:    &models.BatteryData{Voltage: &voltage, Capacity: &capacity},
		},
	}
}

// Activities returns the default demo activity entries.
func Activities(now time.Time) []models.Activity {
	return []models.Activity{
		{
			ID:          1,
			Type:        models.ActivityReportCreated,
			Title:       "New report created",
			Description: "Chemistry Student created report: Week 1 progress",
			UserID:      3,
			CreatedAt:   now,
		},
	}
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
