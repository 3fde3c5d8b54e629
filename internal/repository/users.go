package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltclass/labtrack-api/internal/models"
	"github.com/voltclass/labtrack-api/internal/seed"
	"github.com/voltclass/labtrack-api/internal/store"
)

// UserRepository provides access to the user collection.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (models.User, error)
	GetByUsernameOrEmail(ctx context.Context, identity string) (models.User, error)
	Create(ctx context.Context, user models.User) (models.User, error)
	Save(ctx context.Context, user models.User) (models.User, error)
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	store  store.Store
	logger zerolog.Logger

	mu    sync.Mutex
	users []models.User
}

// NewUserRepository loads the user collection into memory, seeding the
// demo accounts when the stored blob is absent or unreadable.
func NewUserRepository(ctx context.Context, st store.Store, logger zerolog.Logger) (UserRepository, error) {
	r := &userRepository{
		store:  st,
		logger: logger.With().Str("component", "user_repository").Logger(),
	}

	found, err := st.Load(ctx, store.KeyUsers, &r.users)
	if err != nil && !errors.Is(err, store.ErrCorrupt) {
		return nil, err
	}
	if !found || err != nil {
		if err != nil {
			r.logger.Warn().Err(err).Msg("discarding unreadable user collection")
		}
		r.users = seed.Users(time.Now())
		if err := st.Save(ctx, store.KeyUsers, r.users); err != nil {
			return nil, err
		}
		r.logger.Info().Int("count", len(r.users)).Msg("seeded default users")
	}

	return r, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]models.User(nil), r.users...), nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (r *userRepository) GetByUsernameOrEmail(ctx context.Context, identity string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Username, identity) || strings.EqualFold(user.Email, identity) {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = nextUserID(r.users)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	r.users = append(r.users, user)
	if err := r.store.Save(ctx, store.KeyUsers, r.users); err != nil {
		r.users = r.users[:len(r.users)-1]
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) Save(ctx context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == user.ID {
			previous := r.users[i]
			r.users[i] = user
			if err := r.store.Save(ctx, store.KeyUsers, r.users); err != nil {
				r.users[i] = previous
				return models.User{}, err
			}
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == id {
			remaining := append(append([]models.User(nil), r.users[:i]...), r.users[i+1:]...)
			if err := r.store.Save(ctx, store.KeyUsers, remaining); err != nil {
				return err
			}
			r.users = remaining
			return nil
		}
	}
	return ErrNotFound
}

func nextUserID(users []models.User) uint {
	var max uint
	for _, user := range users {
		if user.ID > max {
			max = user.ID
		}
	}
	return max + 1
}
