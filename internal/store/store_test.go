package store

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
)

func setupStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	st, err := New(db, zerolog.New(io.Discard))
	require.NoError(t, err)
	return st, db
}

func TestStoreRoundTrip(t *testing.T) {
	st, _ := setupStore(t)
	ctx := context.Background()

	created := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{
			ID:          1,
			Title:       "Cycle test cells",
			Description: "Run charge/discharge cycles on the sample pack",
			Category:    "experiment",
			BatteryType: "lithium-ion",
			Priority:    models.PriorityHigh,
			Status:      models.TaskStatusInProgress,
			DueDate:     "2025-09-15",
			Progress:    40,
			AssignedTo:  []uint{3},
			CreatedBy:   2,
			Comments:    []models.Comment{{AuthorID: 3, Text: "started", CreatedAt: created}},
			Attachments: []models.Attachment{},
			CreatedAt:   created,
			UpdatedAt:   created,
		},
	}

	require.NoError(t, st.Save(ctx, KeyTasks, tasks))

	var loaded []models.Task
	found, err := st.Load(ctx, KeyTasks, &loaded)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, tasks, loaded)
}

func TestStoreLoadMissingKey(t *testing.T) {
	st, _ := setupStore(t)

	var out []models.User
	found, err := st.Load(context.Background(), KeyUsers, &out)
	require.NoError(t, err)
	require.False(t, found)
}

func TestStoreLoadCorruptBlob(t *testing.T) {
	st, db := setupStore(t)
	ctx := context.Background()

	blob := CollectionBlob{Key: KeyReports, Value: []byte("{not json"), UpdatedAt: time.Now()}
	require.NoError(t, db.Create(&blob).Error)

	var out []models.Report
	_, err := st.Load(ctx, KeyReports, &out)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestStoreSaveOverwrites(t *testing.T) {
	st, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, KeyUsers, []models.User{{ID: 1, Username: "admin"}}))
	require.NoError(t, st.Save(ctx, KeyUsers, []models.User{{ID: 1, Username: "admin"}, {ID: 2, Username: "teacher"}}))

	var users []models.User
	found, err := st.Load(ctx, KeyUsers, &users)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, users, 2)
}
