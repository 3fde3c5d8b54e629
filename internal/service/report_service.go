package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/voltclass/labtrack-api/internal/dto"
	"github.com/voltclass/labtrack-api/internal/models"
	"github.com/voltclass/labtrack-api/internal/repository"
)

// Report workflow failure causes.
var (
	ErrReportNotFound  = errors.New("report not found")
	ErrReportForbidden = errors.New("not allowed to access this report")
	ErrReportNotDraft  = errors.New("report has already been submitted")
)

// ReportService orchestrates the experiment report workflow.
type ReportService interface {
	List(ctx context.Context, viewer ActivityActor) (dto.ReportListResponse, error)
	Get(ctx context.Context, id uint, viewer ActivityActor) (dto.ReportResponse, error)
	Create(ctx context.Context, req dto.ReportCreateRequest, actor ActivityActor) (dto.ReportResponse, error)
	Update(ctx context.Context, id uint, req dto.ReportUpdateRequest, actor ActivityActor) (dto.ReportResponse, error)
	Submit(ctx context.Context, id uint, actor ActivityActor) (dto.ReportResponse, error)
	Review(ctx context.Context, id uint, req dto.ReportReviewRequest, actor ActivityActor) (dto.ReportResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type reportService struct {
	reports   repository.ReportRepository
	users     repository.UserRepository
	activity  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewReportService constructs the report service.
func NewReportService(reports repository.ReportRepository, users repository.UserRepository, activity ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) ReportService {
	return &reportService{
		reports:   reports,
		users:     users,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "report_service").Logger(),
	}
}

// List returns reports visible to the viewer. Students only see their
// own reports; teachers and admins see everything.
func (s *reportService) List(ctx context.Context, viewer ActivityActor) (dto.ReportListResponse, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		return dto.ReportListResponse{}, err
	}

	visible := make([]models.Report, 0, len(reports))
	for _, report := range reports {
		if isTeacherRole(viewer.Role) || report.CreatedBy == viewer.ID {
			visible = append(visible, report)
		}
	}

	resolve := nameResolver(ctx, s.users)
	items := make([]dto.ReportResponse, 0, len(visible))
	for _, report := range visible {
		items = append(items, dto.NewReportResponse(report, resolve))
	}

	return dto.ReportListResponse{Items: items, Total: len(items)}, nil
}

func (s *reportService) Get(ctx context.Context, id uint, viewer ActivityActor) (dto.ReportResponse, error) {
	report, err := s.getReport(ctx, id)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	if !isTeacherRole(viewer.Role) && report.CreatedBy != viewer.ID {
		return dto.ReportResponse{}, ErrReportForbidden
	}

	return dto.NewReportResponse(report, nameResolver(ctx, s.users)), nil
}

func (s *reportService) Create(ctx context.Context, req dto.ReportCreateRequest, actor ActivityActor) (dto.ReportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ReportResponse{}, err
	}

	report := models.Report{
		Title:          req.Title,
		Type:           req.Type,
		Content:        req.Content,
		Group:          req.Group,
		ExperimentDate: req.ExperimentDate,
		Status:         models.ReportStatusDraft,
		CreatedBy:      actor.ID,
	}
	if req.BatteryData != nil {
		report.BatteryData = &models.BatteryData{
			Voltage:     req.BatteryData.Voltage,
			Capacity:    req.BatteryData.Capacity,
			Temperature: req.BatteryData.Temperature,
			Efficiency:  req.BatteryData.Efficiency,
		}
	}

	report, err := s.reports.Create(ctx, report)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	if s.activity != nil {
		_, _ = s.activity.Record(ctx, ActivityEntry{
			Type:        models.ActivityReportCreated,
			Title:       "New report created",
			Description: fmt.Sprintf("%s created report: %s", actor.Name, report.Title),
			UserID:      actor.ID,
		})
	}

	return dto.NewReportResponse(report, nameResolver(ctx, s.users)), nil
}

func (s *reportService) Update(ctx context.Context, id uint, req dto.ReportUpdateRequest, actor ActivityActor) (dto.ReportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ReportResponse{}, err
	}

	report, err := s.getReport(ctx, id)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	if !isTeacherRole(actor.Role) && report.CreatedBy != actor.ID {
		return dto.ReportResponse{}, ErrReportForbidden
	}

	if req.Title != nil {
		report.Title = *req.Title
	}
	if req.Type != nil {
		report.Type = *req.Type
	}
	if req.Content != nil {
		report.Content = *req.Content
	}
	if req.Group != nil {
		report.Group = *req.Group
	}
	if req.ExperimentDate != nil {
		report.ExperimentDate = *req.ExperimentDate
	}
	if req.BatteryData != nil {
		report.BatteryData = &models.BatteryData{
			Voltage:     req.BatteryData.Voltage,
			Capacity:    req.BatteryData.Capacity,
			Temperature: req.BatteryData.Temperature,
			Efficiency:  req.BatteryData.Efficiency,
		}
	}

	report, err = s.reports.Save(ctx, report)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	return dto.NewReportResponse(report, nameResolver(ctx, s.users)), nil
}

// Submit moves a draft report into the submitted state so teachers can
// review it. Only the author may submit, and only from draft.
func (s *reportService) Submit(ctx context.Context, id uint, actor ActivityActor) (dto.ReportResponse, error) {
	report, err := s.getReport(ctx, id)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	if report.CreatedBy != actor.ID {
		return dto.ReportResponse{}, ErrReportForbidden
	}
	if report.Status != models.ReportStatusDraft {
		return dto.ReportResponse{}, ErrReportNotDraft
	}

	report.Status = models.ReportStatusSubmitted
	report, err = s.reports.Save(ctx, report)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	if s.activity != nil {
		_, _ = s.activity.Record(ctx, ActivityEntry{
			Type:        models.ActivityReportSubmitted,
			Title:       "Report submitted",
			Description: fmt.Sprintf("%s submitted report: %s", actor.Name, report.Title),
			UserID:      actor.ID,
		})
	}

	return dto.NewReportResponse(report, nameResolver(ctx, s.users)), nil
}

// Review approves a submitted report and records who reviewed it.
func (s *reportService) Review(ctx context.Context, id uint, req dto.ReportReviewRequest, actor ActivityActor) (dto.ReportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ReportResponse{}, err
	}

	if !isTeacherRole(actor.Role) {
		return dto.ReportResponse{}, ErrReportForbidden
	}

	report, err := s.getReport(ctx, id)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	reviewer := actor.ID
	report.Status = models.ReportStatusApproved
	report.ReviewedBy = &reviewer
	report.ReviewComments = req.Comments

	report, err = s.reports.Save(ctx, report)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	if s.activity != nil {
		_, _ = s.activity.Record(ctx, ActivityEntry{
			Type:        models.ActivityReportReviewed,
			Title:       "Report reviewed",
			Description: fmt.Sprintf("%s approved report: %s", actor.Name, report.Title),
			UserID:      actor.ID,
		})
	}

	return dto.NewReportResponse(report, nameResolver(ctx, s.users)), nil
}

func (s *reportService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	report, err := s.getReport(ctx, id)
	if err != nil {
		return err
	}

	if !isTeacherRole(actor.Role) && report.CreatedBy != actor.ID {
		return ErrReportForbidden
	}

	if err := s.reports.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReportNotFound
		}
		return err
	}
	return nil
}

func (s *reportService) getReport(ctx context.Context, id uint) (models.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Report{}, ErrReportNotFound
		}
		return models.Report{}, err
	}
	return report, nil
}
