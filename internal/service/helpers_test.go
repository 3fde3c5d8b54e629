package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/voltclass/labtrack-api/internal/repository"
	"github.com/voltclass/labtrack-api/internal/store"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func setupTestStore(t *testing.T) store.Store {
	t.Helper()
	// a named in-memory database so every pooled connection sees the same data
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	st, err := store.New(db, testLogger())
	require.NoError(t, err)
	return st
}

type testRepos struct {
	users      repository.UserRepository
	tasks      repository.TaskRepository
	reports    repository.ReportRepository
	activities repository.ActivityRepository
}

func setupTestRepos(t *testing.T, st store.Store) testRepos {
	t.Helper()
	ctx := context.Background()

	users, err := repository.NewUserRepository(ctx, st, testLogger())
	require.NoError(t, err)
	tasks, err := repository.NewTaskRepository(ctx, st, testLogger())
	require.NoError(t, err)
	reports, err := repository.NewReportRepository(ctx, st, testLogger())
	require.NoError(t, err)
	activities, err := repository.NewActivityRepository(ctx, st, testLogger())
	require.NoError(t, err)

	return testRepos{users: users, tasks: tasks, reports: reports, activities: activities}
}

func newTestValidator() *validator.Validate {
	return validator.New()
}
