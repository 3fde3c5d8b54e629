package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voltclass/labtrack-api/internal/dto"
	"github.com/voltclass/labtrack-api/internal/models"
)

func setupReportService(t *testing.T) (ReportService, testRepos, ActivityService) {
	t.Helper()
	st := setupTestStore(t)
	repos := setupTestRepos(t, st)

	activity := NewActivityService(repos.activities, repos.users, testLogger())
	reports := NewReportService(repos.reports, repos.users, activity, newTestValidator(), testLogger())
	return reports, repos, activity
}

func TestReportListScopedByRole(t *testing.T) {
	reports, _, _ := setupReportService(t)
	ctx := context.Background()

	// the seeded report belongs to the student
	asStudent, err := reports.List(ctx, studentActor())
	require.NoError(t, err)
	require.Equal(t, 1, asStudent.Total)

	otherStudent := ActivityActor{ID: 99, Role: models.RoleStudent, Name: "Someone Else"}
	asOther, err := reports.List(ctx, otherStudent)
	require.NoError(t, err)
	require.Equal(t, 0, asOther.Total)

	asTeacher, err := reports.List(ctx, teacherActor())
	require.NoError(t, err)
	require.Equal(t, 1, asTeacher.Total)
}

func TestReportGetForbiddenForOtherStudent(t *testing.T) {
	reports, _, _ := setupReportService(t)

	other := ActivityActor{ID: 99, Role: models.RoleStudent, Name: "Someone Else"}
	_, err := reports.Get(context.Background(), 1, other)
	require.ErrorIs(t, err, ErrReportForbidden)
}

func TestReportCreateStartsAsDraft(t *testing.T) {
	reports, _, activity := setupReportService(t)
	ctx := context.Background()

	voltage := 3.6
	created, err := reports.Create(ctx, dto.ReportCreateRequest{
		Title:          "Lead-acid discharge results",
		Type:           models.ReportTypeExperiment,
		Content:        "Discharge curves recorded for all three samples.",
		Group:          "Group A",
		ExperimentDate: "2026-08-28",
		BatteryData:    &dto.BatteryDataPayload{Voltage: &voltage},
	}, studentActor())
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusDraft, created.Status)
	require.Equal(t, "Chemistry Student", created.AuthorName)
	require.NotNil(t, created.BatteryData)

	require.Equal(t, 1, countActivities(t, activity, models.ActivityReportCreated))
}

func TestReportSubmitOnlyFromDraft(t *testing.T) {
	reports, _, activity := setupReportService(t)
	ctx := context.Background()

	created, err := reports.Create(ctx, dto.ReportCreateRequest{
		Title:          "Draft to submit",
		Type:           models.ReportTypeWeekly,
		Content:        "Weekly progress notes.",
		Group:          "Group A",
		ExperimentDate: "2026-08-28",
	}, studentActor())
	require.NoError(t, err)

	submitted, err := reports.Submit(ctx, created.ID, studentActor())
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusSubmitted, submitted.Status)
	require.Equal(t, 1, countActivities(t, activity, models.ActivityReportSubmitted))

	_, err = reports.Submit(ctx, created.ID, studentActor())
	require.ErrorIs(t, err, ErrReportNotDraft)
}

func TestReportSubmitOnlyByAuthor(t *testing.T) {
	reports, _, _ := setupReportService(t)
	ctx := context.Background()

	created, err := reports.Create(ctx, dto.ReportCreateRequest{
		Title:          "Someone else's draft",
		Type:           models.ReportTypeWeekly,
		Content:        "Notes.",
		Group:          "Group A",
		ExperimentDate: "2026-08-28",
	}, studentActor())
	require.NoError(t, err)

	_, err = reports.Submit(ctx, created.ID, teacherActor())
	require.ErrorIs(t, err, ErrReportForbidden)
}

func TestReportReviewApprovesAndRecordsReviewer(t *testing.T) {
	reports, _, activity := setupReportService(t)
	ctx := context.Background()

	reviewed, err := reports.Review(ctx, 1, dto.ReportReviewRequest{Comments: "Solid first week."}, teacherActor())
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusApproved, reviewed.Status)
	require.Equal(t, "Chemistry Teacher", reviewed.ReviewerName)
	require.Equal(t, "Solid first week.", reviewed.ReviewComments)

	require.Equal(t, 1, countActivities(t, activity, models.ActivityReportReviewed))
}

func TestReportReviewForbiddenForStudents(t *testing.T) {
	reports, _, _ := setupReportService(t)

	_, err := reports.Review(context.Background(), 1, dto.ReportReviewRequest{}, studentActor())
	require.ErrorIs(t, err, ErrReportForbidden)
}

func TestReportUpdateMergesOnlySetFields(t *testing.T) {
	reports, _, _ := setupReportService(t)
	ctx := context.Background()

	content := "Revised after the second discharge run."
	updated, err := reports.Update(ctx, 1, dto.ReportUpdateRequest{Content: &content}, studentActor())
	require.NoError(t, err)
	require.Equal(t, content, updated.Content)
	require.Equal(t, "Week 1 progress", updated.Title)
}

func TestReportDeleteForbiddenForOtherStudent(t *testing.T) {
	reports, _, _ := setupReportService(t)
	ctx := context.Background()

	other := ActivityActor{ID: 99, Role: models.RoleStudent, Name: "Someone Else"}
	err := reports.Delete(ctx, 1, other)
	require.ErrorIs(t, err, ErrReportForbidden)

	require.NoError(t, reports.Delete(ctx, 1, teacherActor()))
	_, err = reports.Get(ctx, 1, teacherActor())
	require.ErrorIs(t, err, ErrReportNotFound)
}
