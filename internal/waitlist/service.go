package waitlist

import (
	"context"
	"errors"
	"time"

	"thryve/internal/booking"
	"thryve/internal/class"
	"thryve/internal/logger"
	"thryve/internal/membership"
	"thryve/internal/metrics"
	"thryve/internal/notification"
	"thryve/internal/user"

	"github.com/google/uuid"
)

var (
	ErrClassNotFound    = errors.New("class instance not found")
	ErrClassNotJoinable = errors.New("class has already started or is cancelled")
	ErrAlreadyBooked    = errors.New("user already holds a booking for this class")
	ErrEntryNotFound    = errors.New("waitlist entry not found")
	ErrNotOwner         = errors.New("can only manage own waitlist entries")
	ErrNotPromoted      = errors.New("waitlist entry is not awaiting confirmation")
	ErrPromotionExpired = errors.New("promotion confirmation window has passed")
)

type Service interface {
	Join(ctx context.Context, userID int, instanceID string, req JoinRequest) (*Entry, error)
	Leave(ctx context.Context, userID int, entryID string) error
	GetUserEntries(ctx context.Context, userID int) ([]Entry, error)
	ListForInstance(ctx context.Context, instanceID string) ([]Entry, error)
	PromoteForInstance(ctx context.Context, instanceID string, freedSeats int) (int, error)
	ConfirmPromotion(ctx context.Context, userID int, entryID string) (*booking.Booking, *booking.Rejection, error)
}

type service struct {
	repo           Repository
	classRepo      class.Repository
	bookingRepo    booking.Repository
	membershipRepo membership.Repository
	userRepo       user.Repository
	notifications  *notification.Service
	confirmWindow  time.Duration
	now            func() time.Time
}

func NewService(
	repo Repository,
	classRepo class.Repository,
	bookingRepo booking.Repository,
	membershipRepo membership.Repository,
	userRepo user.Repository,
	notifications *notification.Service,
	confirmWindow time.Duration,
) Service {
	return &service{
		repo:           repo,
		classRepo:      classRepo,
		bookingRepo:    bookingRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		notifications:  notifications,
		confirmWindow:  confirmWindow,
		now:            time.Now,
	}
}

// Join enrolls the user at the back of the instance's waitlist. There is no
// cap on waitlist depth. The stored position is a display hint only.
func (s *service) Join(ctx context.Context, userID int, instanceID string, req JoinRequest) (*Entry, error) {
	inst, err := s.classRepo.GetByID(ctx, instanceID)
	if err != nil {
		return nil, ErrClassNotFound
	}

	if inst.Status != class.StatusScheduled || !inst.StartTime.After(s.now()) {
		return nil, ErrClassNotJoinable
	}

	// A seat holder has nothing to wait for.
	hasBooking, err := s.bookingRepo.UserHasBookingForInstance(ctx, userID, instanceID)
	if err != nil {
		return nil, err
	}
	if hasBooking {
		return nil, ErrAlreadyBooked
	}

	activeCount, err := s.repo.CountActiveForInstance(ctx, instanceID)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:              uuid.NewString(),
		ClassInstanceID: instanceID,
		UserID:          userID,
		Position:        activeCount + 1,
		AutoBook:        req.AutoBook,
		NotifyEmail:     req.NotifyEmail,
		NotifySMS:       req.NotifySMS,
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}

	metrics.RecordWaitlistEnrollment()

	if u, err := s.userRepo.FindByID(ctx, userID); err == nil && u != nil {
		s.notifications.SendWaitlistEnrollment(ctx, u.Email, u.Name, inst.Name, created.Position)
	}

	return created, nil
}

func (s *service) Leave(ctx context.Context, userID int, entryID string) error {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return ErrEntryNotFound
	}

	if entry.UserID != userID {
		return ErrNotOwner
	}

	if err := s.repo.Cancel(ctx, entryID); err != nil {
		if errors.Is(err, ErrEntryNotFoundOrNotActive) {
			return ErrEntryNotFound
		}
		return err
	}

	return nil
}

func (s *service) GetUserEntries(ctx context.Context, userID int) ([]Entry, error) {
	return s.repo.GetUserEntries(ctx, userID)
}

func (s *service) ListForInstance(ctx context.Context, instanceID string) ([]Entry, error) {
	return s.repo.ListForInstance(ctx, instanceID)
}

// PromoteForInstance promotes up to freedSeats entries in FIFO order.
// Called once per capacity-freeing event by the booking service.
func (s *service) PromoteForInstance(ctx context.Context, instanceID string, freedSeats int) (int, error) {
	promotions, err := s.repo.PromoteForInstance(ctx, instanceID, freedSeats, s.confirmWindow)
	if err != nil {
		return 0, err
	}

	for _, p := range promotions {
		metrics.RecordWaitlistPromotion(p.Booking != nil)

		u, err := s.userRepo.FindByID(ctx, p.Entry.UserID)
		if err != nil || u == nil {
			continue
		}

		inst, err := s.classRepo.GetByID(ctx, instanceID)
		if err != nil {
			continue
		}

		if p.Booking != nil {
			s.notifications.SendBookingConfirmation(ctx, u.Email, u.Name, inst.Name, inst.StartTime)
		} else {
			s.notifications.SendWaitlistPromotion(ctx, u.Email, u.Name, inst.Name, p.Entry.PromotionExpiresAt)
		}
	}

	return len(promotions), nil
}

// ConfirmPromotion converts a promoted, non-auto-book entry into a booking.
// The seat is not held while the user decides, so the admission transaction
// can still refuse with CLASS_FULL if someone else took it.
func (s *service) ConfirmPromotion(ctx context.Context, userID int, entryID string) (*booking.Booking, *booking.Rejection, error) {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return nil, nil, ErrEntryNotFound
	}

	if entry.UserID != userID {
		return nil, nil, ErrNotOwner
	}

	if entry.Status != StatusPromoted || entry.AutoBook {
		return nil, nil, ErrNotPromoted
	}

	if entry.PromotionExpiresAt != nil && entry.PromotionExpiresAt.Before(s.now()) {
		return nil, nil, ErrPromotionExpired
	}

	inst, err := s.classRepo.GetWithAvailability(ctx, entry.ClassInstanceID)
	if err != nil {
		return nil, nil, ErrClassNotFound
	}

	m, err := s.membershipRepo.GetActiveForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	b := &booking.Booking{
		ID:              uuid.NewString(),
		ClassInstanceID: inst.ID,
		ClassID:         inst.ClassID,
		UserID:          userID,
		StartTime:       inst.StartTime,
		EndTime:         inst.EndTime,
		PriceCents:      booking.PriceFor(m.Type, inst.PriceCents),
		PaymentStatus:   booking.PaymentPending,
		Type:            booking.TypeWaitlistPromotion,
	}

	// Promotion bookings never charge a pack credit; the seat was already
	// earned by waiting.
	created, err := s.bookingRepo.CreateConfirmed(ctx, b, false)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrClassFull):
			return nil, &booking.Rejection{
				Reason:     booking.ReasonClassFull,
				Message:    "the freed seat was taken before you confirmed",
				Suggestion: "waitlist",
			}, nil
		case errors.Is(err, booking.ErrAlreadyBooked):
			return nil, &booking.Rejection{
				Reason:  booking.ReasonAlreadyBooked,
				Message: "you already have a booking for this class",
			}, nil
		}
		return nil, nil, err
	}

	if err := s.repo.MarkPromotionConsumed(ctx, entryID); err != nil {
		logger.Errorf("Failed to clear promotion deadline for entry %s: %v", entryID, err)
	}

	metrics.RecordBooking(string(booking.TypeWaitlistPromotion))

	if u, err := s.userRepo.FindByID(ctx, userID); err == nil && u != nil {
		s.notifications.SendBookingConfirmation(ctx, u.Email, u.Name, inst.Name, inst.StartTime)
	}

	return created, nil, nil
}
