package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Collection keys used by the repositories.
const (
	KeyUsers      = "users"
	KeyTasks      = "tasks"
	KeyReports    = "reports"
	KeyActivities = "activities"
)

// ErrCorrupt indicates a stored collection could not be decoded. Callers
// are expected to discard the blob and reseed defaults.
var ErrCorrupt = errors.New("stored collection is corrupt")

// CollectionBlob is a single named collection serialized as JSON.
type CollectionBlob struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Value     datatypes.JSON `gorm:"type:json"`
	UpdatedAt time.Time
}

// Store persists whole collections as JSON blobs keyed by name.
type Store interface {
	// Load decodes the named collection into out. It reports false when the
	// key is absent and wraps ErrCorrupt when the blob cannot be decoded.
	Load(ctx context.Context, key string, out interface{}) (bool, error)
	// Save serializes value and writes it under key, replacing any
	// previous blob in full.
	Save(ctx context.Context, key string, value interface{}) error
}

type gormStore struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// New migrates the blob table and returns a store backed by the database.
func New(db *gorm.DB, logger zerolog.Logger) (Store, error) {
	if err := db.AutoMigrate(&CollectionBlob{}); err != nil {
		return nil, fmt.Errorf("failed to migrate collection blobs: %w", err)
	}

	return &gormStore{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}, nil
}

func (s *gormStore) Load(ctx context.Context, key string, out interface{}) (bool, error) {
	var blob CollectionBlob
	if err := s.db.WithContext(ctx).First(&blob, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load collection %q: %w", key, err)
	}

	if err := json.Unmarshal(blob.Value, out); err != nil {
		return false, fmt.Errorf("%w: collection %q: %v", ErrCorrupt, key, err)
	}

	return true, nil
}

func (s *gormStore) Save(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode collection %q: %w", key, err)
	}

	blob := CollectionBlob{Key: key, Value: datatypes.JSON(payload), UpdatedAt: time.Now()}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&blob).Error; err != nil {
		return fmt.Errorf("failed to persist collection %q: %w", key, err)
	}

	return nil
}
