package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voltclass/labtrack-api/internal/models"
)

func setupActivityService(t *testing.T) (ActivityService, testRepos) {
	t.Helper()
	st := setupTestStore(t)
	repos := setupTestRepos(t, st)
	return NewActivityService(repos.activities, repos.users, testLogger()), repos
}

func TestActivityRecordRequiresTypeAndTitle(t *testing.T) {
	activity, _ := setupActivityService(t)
	ctx := context.Background()

	_, err := activity.Record(ctx, ActivityEntry{Title: "missing type"})
	require.Error(t, err)

	_, err = activity.Record(ctx, ActivityEntry{Type: models.ActivityTaskCreated})
	require.Error(t, err)
}

func TestActivityRecentNewestFirst(t *testing.T) {
	activity, _ := setupActivityService(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := activity.Record(ctx, ActivityEntry{
			Type:   models.ActivityTaskCreated,
			Title:  fmt.Sprintf("entry %d", i),
			UserID: 2,
		})
		require.NoError(t, err)
	}

	feed, err := activity.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, feed.Items, 2)
	require.Equal(t, "entry 3", feed.Items[0].Title)
	require.Equal(t, "entry 2", feed.Items[1].Title)
}

func TestActivityRecentDefaultAndMaxLimits(t *testing.T) {
	activity, _ := setupActivityService(t)
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		_, err := activity.Record(ctx, ActivityEntry{
			Type:   models.ActivityUserLogin,
			Title:  "User logged in",
			UserID: 1,
		})
		require.NoError(t, err)
	}

	feed, err := activity.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, feed.Items, defaultFeedLimit)

	feed, err = activity.Recent(ctx, 500)
	require.NoError(t, err)
	// 30 recorded plus the seeded entry
	require.Len(t, feed.Items, 31)
}

func TestActivityResolvesActorName(t *testing.T) {
	activity, repos := setupActivityService(t)
	ctx := context.Background()

	_, err := activity.Record(ctx, ActivityEntry{
		Type:   models.ActivityTaskCreated,
		Title:  "New task created",
		UserID: 2,
	})
	require.NoError(t, err)

	feed, err := activity.Recent(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Chemistry Teacher", feed.Items[0].ActorName)

	require.NoError(t, repos.users.Delete(ctx, 2))
	feed, err = activity.Recent(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, UnknownUserLabel, feed.Items[0].ActorName)
}
