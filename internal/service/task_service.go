package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/voltclass/labtrack-api/internal/dto"
	"github.com/voltclass/labtrack-api/internal/models"
	"github.com/voltclass/labtrack-api/internal/repository"
)

// ErrTaskNotFound indicates the task is absent from the collection.
var ErrTaskNotFound = errors.New("task not found")

// Task list filters understood by List.
const (
	TaskFilterAll       = "all"
	TaskFilterMine      = "my-tasks"
	TaskFilterPending   = "pending"
	TaskFilterCompleted = "completed"
	TaskFilterUrgent    = "urgent"
)

const dueDateLayout = "2006-01-02"

// TaskService orchestrates task management use cases.
type TaskService interface {
	List(ctx context.Context, filter string, viewer ActivityActor) (dto.TaskListResponse, error)
	Get(ctx context.Context, id uint) (dto.TaskResponse, error)
	Create(ctx context.Context, req dto.TaskCreateRequest, actor ActivityActor) (dto.TaskResponse, error)
	Update(ctx context.Context, id uint, req dto.TaskUpdateRequest, actor ActivityActor) (dto.TaskResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
	AddComment(ctx context.Context, id uint, req dto.TaskCommentRequest, actor ActivityActor) (dto.TaskResponse, error)
	Upcoming(ctx context.Context, limit int) ([]dto.TaskResponse, error)
}

type taskService struct {
	tasks     repository.TaskRepository
	users     repository.UserRepository
	activity  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewTaskService constructs the task service.
func NewTaskService(tasks repository.TaskRepository, users repository.UserRepository, activity ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) TaskService {
	return &taskService{
		tasks:     tasks,
		users:     users,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "task_service").Logger(),
		now:       time.Now,
	}
}

func (s *taskService) List(ctx context.Context, filter string, viewer ActivityActor) (dto.TaskListResponse, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return dto.TaskListResponse{}, err
	}

	filtered := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if matchesFilter(task, filter, viewer.ID) {
			filtered = append(filtered, task)
		}
	}

	resolve := nameResolver(ctx, s.users)
	items := make([]dto.TaskResponse, 0, len(filtered))
	for _, task := range filtered {
		items = append(items, dto.NewTaskResponse(task, resolve))
	}

	return dto.TaskListResponse{Items: items, Total: len(items)}, nil
}

func matchesFilter(task models.Task, filter string, viewerID uint) bool {
	switch filter {
	case TaskFilterMine:
		for _, id := range task.AssignedTo {
			if id == viewerID {
				return true
			}
		}
		return false
	case TaskFilterPending:
		return task.Status == models.TaskStatusPending
	case TaskFilterCompleted:
		return task.Status == models.TaskStatusCompleted
	case TaskFilterUrgent:
		return task.Priority == models.PriorityUrgent
	default:
		return true
	}
}

func (s *taskService) Get(ctx context.Context, id uint) (dto.TaskResponse, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.TaskResponse{}, ErrTaskNotFound
		}
		return dto.TaskResponse{}, err
	}

	return dto.NewTaskResponse(task, nameResolver(ctx, s.users)), nil
}

func (s *taskService) Create(ctx context.Context, req dto.TaskCreateRequest, actor ActivityActor) (dto.TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TaskResponse{}, err
	}

	task, err := s.tasks.Create(ctx, models.Task{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		BatteryType: req.BatteryType,
		Priority:    req.Priority,
		Status:      models.TaskStatusPending,
		DueDate:     req.DueDate,
		Progress:    0,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   actor.ID,
	})
	if err != nil {
		return dto.TaskResponse{}, err
	}

	if s.activity != nil {
		_, _ = s.activity.Record(ctx, ActivityEntry{
			Type:        models.ActivityTaskCreated,
			Title:       "New task created",
			Description: fmt.Sprintf("%s created task: %s", actor.Name, task.Title),
			UserID:      actor.ID,
		})
	}

	return dto.NewTaskResponse(task, nameResolver(ctx, s.users)), nil
}

func (s *taskService) Update(ctx context.Context, id uint, req dto.TaskUpdateRequest, actor ActivityActor) (dto.TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TaskResponse{}, err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.TaskResponse{}, ErrTaskNotFound
		}
		return dto.TaskResponse{}, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Category != nil {
		task.Category = *req.Category
	}
	if req.BatteryType != nil {
		task.BatteryType = *req.BatteryType
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.Progress != nil {
		task.Progress = *req.Progress
	}
	if req.AssignedTo != nil {
		task.AssignedTo = req.AssignedTo
	}

	task, err = s.tasks.Save(ctx, task)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.TaskResponse{}, ErrTaskNotFound
		}
		return dto.TaskResponse{}, err
	}

	if s.activity != nil {
		_, _ = s.activity.Record(ctx, ActivityEntry{
			Type:        models.ActivityTaskUpdated,
			Title:       "Task updated",
			Description: fmt.Sprintf("%s updated task: %s", actor.Name, task.Title),
			UserID:      actor.ID,
		})
	}

	return dto.NewTaskResponse(task, nameResolver(ctx, s.users)), nil
}

func (s *taskService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if s.activity != nil {
		_, _ = s.activity.Record(ctx, ActivityEntry{
			Type:        models.ActivityTaskDeleted,
			Title:       "Task deleted",
			Description: fmt.Sprintf("%s deleted task: %s", actor.Name, task.Title),
			UserID:      actor.ID,
		})
	}

	return nil
}

func (s *taskService) AddComment(ctx context.Context, id uint, req dto.TaskCommentRequest, actor ActivityActor) (dto.TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TaskResponse{}, err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.TaskResponse{}, ErrTaskNotFound
		}
		return dto.TaskResponse{}, err
	}

	task.Comments = append(task.Comments, models.Comment{
		AuthorID:  actor.ID,
		Text:      req.Text,
		CreatedAt: s.now(),
	})

	task, err = s.tasks.Save(ctx, task)
	if err != nil {
		return dto.TaskResponse{}, err
	}

	return dto.NewTaskResponse(task, nameResolver(ctx, s.users)), nil
}

// Upcoming returns tasks due within the next seven days, soonest first.
func (s *taskService) Upcoming(ctx context.Context, limit int) ([]dto.TaskResponse, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	horizon := now.AddDate(0, 0, 7)

	type dated struct {
		task models.Task
		due  time.Time
	}
	upcoming := make([]dated, 0, len(tasks))
	for _, task := range tasks {
		due, err := time.Parse(dueDateLayout, task.DueDate)
		if err != nil {
			continue
		}
		if due.After(now) && !due.After(horizon) {
			upcoming = append(upcoming, dated{task: task, due: due})
		}
	}

	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].due.Before(upcoming[j].due) })
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}

	resolve := nameResolver(ctx, s.users)
	items := make([]dto.TaskResponse, 0, len(upcoming))
	for _, entry := range upcoming {
		items = append(items, dto.NewTaskResponse(entry.task, resolve))
	}
	return items, nil
}
