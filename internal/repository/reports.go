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

// ReportRepository provides access to the report collection.
type ReportRepository interface {
	List(ctx context.Context) ([]models.Report, error)
	GetByID(ctx context.Context, id uint) (models.Report, error)
	Create(ctx context.Context, report models.Report) (models.Report, error)
	Save(ctx context.Context, report models.Report) (models.Report, error)
	Delete(ctx context.Context, id uint) error
}

type reportRepository struct {
	store  store.Store
	logger zerolog.Logger

	mu      sync.Mutex
	reports []models.Report
}

// NewReportRepository loads the report collection into memory, seeding a
// demo report when the stored blob is absent or unreadable.
func NewReportRepository(ctx context.Context, st store.Store, logger zerolog.Logger) (ReportRepository, error) {
	r := &reportRepository{
		store:  st,
		logger: logger.With().Str("component", "report_repository").Logger(),
	}

	found, err := st.Load(ctx, store.KeyReports, &r.reports)
	if err != nil && !errors.Is(err, store.ErrCorrupt) {
		return nil, err
	}
	if !found || err != nil {
		if err != nil {
			r.logger.Warn().Err(err).Msg("discarding unreadable report collection")
		}
		r.reports = seed.Reports(time.Now())
		if err := st.Save(ctx, store.KeyReports, r.reports); err != nil {
			return nil, err
		}
		r.logger.Info().Int("count", len(r.reports)).Msg("seeded default reports")
	}

	return r, nil
}

func (r *reportRepository) List(ctx context.Context) ([]models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]models.Report(nil), r.reports...), nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, report := range r.reports {
		if report.ID == id {
			return report, nil
		}
	}
	return models.Report{}, ErrNotFound
}

func (r *reportRepository) Create(ctx context.Context, report models.Report) (models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	report.ID = nextReportID(r.reports)
	report.CreatedAt = now
	report.UpdatedAt = now

	r.reports = append(r.reports, report)
	if err := r.store.Save(ctx, store.KeyReports, r.reports); err != nil {
		r.reports = r.reports[:len(r.reports)-1]
		return models.Report{}, err
	}

	return report, nil
}

func (r *reportRepository) Save(ctx context.Context, report models.Report) (models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.reports {
		if r.reports[i].ID == report.ID {
			previous := r.reports[i]
			report.UpdatedAt = time.Now()
			r.reports[i] = report
			if err := r.store.Save(ctx, store.KeyReports, r.reports); err != nil {
				r.reports[i] = previous
				return models.Report{}, err
			}
			return report, nil
		}
	}
	return models.Report{}, ErrNotFound
}

func (r *reportRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.reports {
		if r.reports[i].ID == id {
			remaining := append(append([]models.Report(nil), r.reports[:i]...), r.reports[i+1:]...)
			if err := r.store.Save(ctx, store.KeyReports, remaining); err != nil {
				return err
			}
			r.reports = remaining
			return nil
		}
	}
	return ErrNotFound
}

func nextReportID(reports []models.Report) uint {
	var max uint
	for _, report := range reports {
		if report.ID > max {
			max = report.ID
		}
	}
	return max + 1
}
