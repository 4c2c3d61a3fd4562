package waitlist

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) (*Entry, error)
	GetByID(ctx context.Context, id string) (*Entry, error)
	Cancel(ctx context.Context, id string) error
	CountActiveForInstance(ctx context.Context, instanceID string) (int, error)
	ListForInstance(ctx context.Context, instanceID string) ([]Entry, error)
	GetUserEntries(ctx context.Context, userID int) ([]Entry, error)
	MarkPromotionConsumed(ctx context.Context, id string) error
	// PromoteForInstance promotes up to freedSeats active entries in strict
	// created_at order inside one transaction holding the instance row lock,
	// so two promotion runs for the same instance cannot interleave, and
	// neither can a concurrent booking admission. Entries with auto_book get
	// a confirmed waitlist_promotion booking; the rest get a confirmation
	// deadline of now + confirmWindow.
	PromoteForInstance(ctx context.Context, instanceID string, freedSeats int, confirmWindow time.Duration) ([]Promotion, error)
}
