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

// ActivityRepository persists the append-only activity feed, newest first.
type ActivityRepository interface {
	ListRecent(ctx context.Context, limit int) ([]models.Activity, error)
	Append(ctx context.Context, activity models.Activity) (models.Activity, error)
}

type activityRepository struct {
	store  store.Store
	logger zerolog.Logger

	mu      sync.Mutex
	entries []models.Activity
}

// NewActivityRepository loads the activity collection into memory, seeding
// demo entries when the stored blob is absent or unreadable.
func NewActivityRepository(ctx context.Context, st store.Store, logger zerolog.Logger) (ActivityRepository, error) {
	r := &activityRepository{
		store:  st,
		logger: logger.With().Str("component", "activity_repository").Logger(),
	}

	found, err := st.Load(ctx, store.KeyActivities, &r.entries)
	if err != nil && !errors.Is(err, store.ErrCorrupt) {
		return nil, err
	}
	if !found || err != nil {
		if err != nil {
			r.logger.Warn().Err(err).Msg("discarding unreadable activity collection")
		}
		r.entries = seed.Activities(time.Now())
		if err := st.Save(ctx, store.KeyActivities, r.entries); err != nil {
			return nil, err
		}
		r.logger.Info().Int("count", len(r.entries)).Msg("seeded default activities")
	}

	return r, nil
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.entries
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return append([]models.Activity(nil), entries...), nil
}

func (r *activityRepository) Append(ctx context.Context, activity models.Activity) (models.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity.ID = nextActivityID(r.entries)
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}

	entries := append([]models.Activity{activity}, r.entries...)
	if err := r.store.Save(ctx, store.KeyActivities, entries); err != nil {
		return models.Activity{}, err
	}
	r.entries = entries

	return activity, nil
}

func nextActivityID(entries []models.Activity) uint {
	var max uint
	for _, entry := range entries {
		if entry.ID > max {
			max = entry.ID
		}
	}
	return max + 1
}
