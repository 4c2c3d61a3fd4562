package booking

import (
	"context"
	"time"
)

type Repository interface {
	// CreateConfirmed inserts the booking only if the instance still has an
	// open seat. The capacity re-count and the insert run inside one
	// transaction holding the instance row lock, so concurrent requests for
	// the last seat serialize and the losers get ErrClassFull. With
	// debitPackCredit the pack-credit debit joins the same transaction and a
	// refused debit surfaces as pack.ErrInsufficientCredits.
	CreateConfirmed(ctx context.Context, b *Booking, debitPackCredit bool) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	// Cancel marks the booking cancelled; with refundPackCredit the credit
	// refund commits atomically with the status change.
	Cancel(ctx context.Context, id string, refundPackCredit bool) error
	UserHasBookingForInstance(ctx context.Context, userID int, instanceID string) (bool, error)
	GetUserBookings(ctx context.Context, userID int) ([]BookingWithClass, error)
	GetByInstance(ctx context.Context, instanceID string) ([]BookingWithClass, error)
	GetStatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error)
	GetStatsByClass(ctx context.Context, from, to time.Time) ([]ClassStat, error)
}
