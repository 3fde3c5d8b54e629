package repository

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/voltclass/labtrack-api/internal/models"
	"github.com/voltclass/labtrack-api/internal/store"
)

func setupTestStore(t *testing.T) (store.Store, *gorm.DB) {
	t.Helper()
	// a named in-memory database so every pooled connection sees the same data
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	st, err := store.New(db, zerolog.New(io.Discard))
	require.NoError(t, err)
	return st, db
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestUserRepositorySeedsDefaults(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	repo, err := NewUserRepository(ctx, st, testLogger())
	require.NoError(t, err)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	admin, err := repo.GetByUsernameOrEmail(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, admin.Role)
	require.True(t, admin.IsActive)
	require.NotEqual(t, "admin123", admin.PasswordHash)

	byEmail, err := repo.GetByUsernameOrEmail(ctx, "TEACHER@project.com")
	require.NoError(t, err)
	require.Equal(t, "teacher", byEmail.Username)
}

func TestUserRepositoryCreateAssignsNextID(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	repo, err := NewUserRepository(ctx, st, testLogger())
	require.NoError(t, err)

	created, err := repo.Create(ctx, models.User{Username: "newbie", Email: "newbie@project.com", Role: models.RoleStudent, IsActive: true})
	require.NoError(t, err)
	require.Equal(t, uint(4), created.ID, "expected max existing id + 1")

	users, err := repo.List(ctx)
	require.NoError(t, err)
	seen := make(map[uint]bool, len(users))
	for _, user := range users {
		require.False(t, seen[user.ID], "duplicate id %d", user.ID)
		seen[user.ID] = true
	}
}

func TestUserRepositoryDeleteDoesNotCascade(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	users, err := NewUserRepository(ctx, st, testLogger())
	require.NoError(t, err)
	tasks, err := NewTaskRepository(ctx, st, testLogger())
	require.NoError(t, err)

	// the seeded tasks are created by user 2
	require.NoError(t, users.Delete(ctx, 2))

	task, err := tasks.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, uint(2), task.CreatedBy, "dangling creator reference must survive")

	_, err = users.GetByID(ctx, 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepositoryReseedsCorruptCollection(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()

	blob := store.CollectionBlob{Key: store.KeyTasks, Value: []byte("][")}
	require.NoError(t, db.Create(&blob).Error)

	repo, err := NewTaskRepository(ctx, st, testLogger())
	require.NoError(t, err)

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tasks, "corrupt blob should be replaced by seeded defaults")
}

func TestTaskRepositoryCreateFromEmptyCollectionStartsAtOne(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, store.KeyTasks, []models.Task{}))

	repo, err := NewTaskRepository(ctx, st, testLogger())
	require.NoError(t, err)

	created, err := repo.Create(ctx, models.Task{Title: "First", Priority: models.PriorityLow, Status: models.TaskStatusPending})
	require.NoError(t, err)
	require.Equal(t, uint(1), created.ID)
}

func TestTaskRepositorySaveUnknownID(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	repo, err := NewTaskRepository(ctx, st, testLogger())
	require.NoError(t, err)

	_, err = repo.Save(ctx, models.Task{ID: 999, Title: "ghost"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReportRepositoryPersistsAcrossReload(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	repo, err := NewReportRepository(ctx, st, testLogger())
	require.NoError(t, err)

	created, err := repo.Create(ctx, models.Report{
		Title:     "Electrolyte analysis",
		Type:      models.ReportTypeAnalysis,
		Content:   "Comparison of electrolyte formulations.",
		Group:     "Group A",
		Status:    models.ReportStatusDraft,
		CreatedBy: 3,
	})
	require.NoError(t, err)

	reloaded, err := NewReportRepository(ctx, st, testLogger())
	require.NoError(t, err)

	report, err := reloaded.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Electrolyte analysis", report.Title)
	require.Equal(t, models.ReportStatusDraft, report.Status)
}

func TestActivityRepositoryPrependsNewestFirst(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, store.KeyActivities, []models.Activity{}))

	repo, err := NewActivityRepository(ctx, st, testLogger())
	require.NoError(t, err)

	for _, title := range []string{"first", "second", "third"} {
		_, err := repo.Append(ctx, models.Activity{
			Type:      models.ActivityTaskCreated,
			Title:     title,
			UserID:    2,
			CreatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "third", recent[0].Title)
	require.Equal(t, "second", recent[1].Title)
}
