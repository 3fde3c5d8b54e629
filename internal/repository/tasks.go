package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltclass/labtrack-api/internal/models"
	"github.com/voltclass/labtrack-api/internal/seed"
	"github.com/voltclass/labtrack-api/internal/store"
)

// TaskRepository provides access to the task collection.
type TaskRepository interface {
	List(ctx context.Context) ([]models.Task, error)
	GetByID(ctx context.Context, id uint) (models.Task, error)
	Create(ctx context.Context, task models.Task) (models.Task, error)
	Save(ctx context.Context, task models.Task) (models.Task, error)
	Delete(ctx context.Context, id uint) error
}

type taskRepository struct {
	store  store.Store
	logger zerolog.Logger

	mu    sync.Mutex
	tasks []models.Task
}

// NewTaskRepository loads the task collection into memory, seeding demo
// tasks when the stored blob is absent or unreadable.
func NewTaskRepository(ctx context.Context, st store.Store, logger zerolog.Logger) (TaskRepository, error) {
	r := &taskRepository{
		store:  st,
		logger: logger.With().Str("component", "task_repository").Logger(),
	}

	found, err := st.Load(ctx, store.KeyTasks, &r.tasks)
	if err != nil && !errors.Is(err, store.ErrCorrupt) {
		return nil, err
	}
	if !found || err != nil {
		if err != nil {
			r.logger.Warn().Err(err).Msg("discarding unreadable task collection")
		}
		r.tasks = seed.Tasks(time.Now())
		if err := st.Save(ctx, store.KeyTasks, r.tasks); err != nil {
			return nil, err
		}
		r.logger.Info().Int("count", len(r.tasks)).Msg("seeded default tasks")
	}

	return r, nil
}

func (r *taskRepository) List(ctx context.Context) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]models.Task(nil), r.tasks...), nil
}

func (r *taskRepository) GetByID(ctx context.Context, id uint) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range r.tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return models.Task{}, ErrNotFound
}

func (r *taskRepository) Create(ctx context.Context, task models.Task) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	task.ID = nextTaskID(r.tasks)
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.AssignedTo == nil {
		task.AssignedTo = []uint{}
	}
	if task.Comments == nil {
		task.Comments = []models.Comment{}
	}
	if task.Attachments == nil {
		task.Attachments = []models.Attachment{}
	}

	r.tasks = append(r.tasks, task)
	if err := r.store.Save(ctx, store.KeyTasks, r.tasks); err != nil {
		r.tasks = r.tasks[:len(r.tasks)-1]
		return models.Task{}, err
	}

	return task, nil
}

func (r *taskRepository) Save(ctx context.Context, task models.Task) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == task.ID {
			previous := r.tasks[i]
			task.UpdatedAt = time.Now()
			r.tasks[i] = task
			if err := r.store.Save(ctx, store.KeyTasks, r.tasks); err != nil {
				r.tasks[i] = previous
				return models.Task{}, err
			}
			return task, nil
		}
	}
	return models.Task{}, ErrNotFound
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id {
			remaining := append(append([]models.Task(nil), r.tasks[:i]...), r.tasks[i+1:]...)
			if err := r.store.Save(ctx, store.KeyTasks, remaining); err != nil {
				return err
			}
			r.tasks = remaining
			return nil
		}
	}
	return ErrNotFound
}

func nextTaskID(tasks []models.Task) uint {
	var max uint
	for _, task := range tasks {
		if task.ID > max {
			max = task.ID
		}
	}
	return max + 1
}
