package class

import (
	"context"
	"time"
)

type Repository interface {
	UpsertInstances(ctx context.Context, instances []Instance) (int, error)
	GetByID(ctx context.Context, id string) (*Instance, error)
	GetWithAvailability(ctx context.Context, id string) (*InstanceWithAvailability, error)
	ListWithAvailability(ctx context.Context, from, to time.Time) ([]InstanceWithAvailability, error)
	Cancel(ctx context.Context, id string) (*CancelResult, error)
}

// CancelResult reports what a class-instance cancellation touched.
type CancelResult struct {
	BookingsCancelled int64 `json:"bookings_cancelled"`
	WaitlistExpired   int64 `json:"waitlist_expired"`
}
