package membership

import "context"

type Repository interface {
	// GetActiveForUser returns the user's active membership, or a membership
	// of TypeNone when the user has no active one.
	GetActiveForUser(ctx context.Context, userID int) (*Membership, error)
	Create(ctx context.Context, m *Membership) (*Membership, error)
	IncrementClassesUsed(ctx context.Context, id int) error
}
