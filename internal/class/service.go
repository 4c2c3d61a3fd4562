package class

import (
	"context"
	"errors"
	"time"

	"thryve/internal/logger"
	"thryve/internal/metrics"
	"thryve/internal/template"
)

var ErrInvalidWindow = errors.New("invalid expansion window")

type Service interface {
	GenerateForTemplate(ctx context.Context, templateID int, startDate, endDate time.Time) ([]Instance, int, error)
	Search(ctx context.Context, f Filters) ([]InstanceWithAvailability, error)
	GetByID(ctx context.Context, id string) (*InstanceWithAvailability, error)
	Cancel(ctx context.Context, id string) (*CancelResult, error)
}

type service struct {
	repo         Repository
	templateRepo template.Repository
}

func NewService(repo Repository, templateRepo template.Repository) Service {
	return &service{
		repo:         repo,
		templateRepo: templateRepo,
	}
}

// GenerateForTemplate expands the template over [startDate, endDate] and
// upserts the result. Re-running over an overlapping window inserts only the
// instances that do not exist yet.
func (s *service) GenerateForTemplate(ctx context.Context, templateID int, startDate, endDate time.Time) ([]Instance, int, error) {
	tmpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return nil, 0, template.ErrTemplateNotFound
	}

	if tmpl.Recurrence != template.RecurrenceNone && endDate.Before(startDate) {
		return nil, 0, ErrInvalidWindow
	}

	instances, err := GenerateInstances(tmpl, startDate, endDate)
	if err != nil {
		return nil, 0, err
	}

	inserted, err := s.repo.UpsertInstances(ctx, instances)
	if err != nil {
		return nil, 0, err
	}

	metrics.RecordInstancesGenerated(inserted)
	logger.Infof("Generated %d instances (%d new) for template %d", len(instances), inserted, templateID)

	return instances, inserted, nil
}

// Search lists scheduled instances in the filter window (defaulting to the
// next two weeks) and applies the in-memory filter/sort engine.
func (s *service) Search(ctx context.Context, f Filters) ([]InstanceWithAvailability, error) {
	from := time.Now()
	if f.From != nil {
		from = *f.From
	}
	to := from.AddDate(0, 0, 14)
	if f.To != nil {
		to = *f.To
	}

	instances, err := s.repo.ListWithAvailability(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return Search(instances, f), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*InstanceWithAvailability, error) {
	inst, err := s.repo.GetWithAvailability(ctx, id)
	if err != nil {
		return nil, ErrInstanceNotFound
	}
	return inst, nil
}

// Cancel marks the instance cancelled along with its bookings and waitlist.
// Seats freed this way are not promoted; the class no longer exists to
// promote into.
func (s *service) Cancel(ctx context.Context, id string) (*CancelResult, error) {
	result, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Infof("Cancelled instance %s: %d bookings cancelled, %d waitlist entries expired",
		id, result.BookingsCancelled, result.WaitlistExpired)

	return result, nil
}
