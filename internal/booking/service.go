package booking

import (
	"context"
	"errors"
	"time"

	"thryve/internal/class"
	"thryve/internal/logger"
	"thryve/internal/membership"
	"thryve/internal/metrics"
	"thryve/internal/notification"
	"thryve/internal/pack"
	"thryve/internal/user"

	"github.com/google/uuid"
)

var (
	ErrClassNotFound   = errors.New("class instance not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotOwner        = errors.New("can only cancel own bookings")
)

// WaitlistPromoter hands freed seats to the waitlist. Implemented by the
// waitlist service; defined here so this package does not depend on it.
type WaitlistPromoter interface {
	PromoteForInstance(ctx context.Context, instanceID string, freedSeats int) (int, error)
}

type Service interface {
	Create(ctx context.Context, userID int, instanceID string) (*Booking, *Rejection, error)
	Cancel(ctx context.Context, userID int, bookingID string) error
	GetUserBookings(ctx context.Context, userID int) ([]BookingWithClass, error)
	GetByInstance(ctx context.Context, instanceID string) ([]BookingWithClass, error)
	GetStatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error)
	GetStatsByClass(ctx context.Context, from, to time.Time) ([]ClassStat, error)
}

type service struct {
	repo           Repository
	classRepo      class.Repository
	membershipRepo membership.Repository
	userRepo       user.Repository
	notifications  *notification.Service
	promoter       WaitlistPromoter
	now            func() time.Time
}

func NewService(
	repo Repository,
	classRepo class.Repository,
	membershipRepo membership.Repository,
	userRepo user.Repository,
	notifications *notification.Service,
	promoter WaitlistPromoter,
) Service {
	return &service{
		repo:           repo,
		classRepo:      classRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		notifications:  notifications,
		promoter:       promoter,
		now:            time.Now,
	}
}

// Create books one seat for the user. Business refusals come back as a
// Rejection; the error return is reserved for infrastructure failures.
// The service never touches a stored seat counter: the confirmed-booking
// count is re-derived inside the insert transaction.
func (s *service) Create(ctx context.Context, userID int, instanceID string) (*Booking, *Rejection, error) {
	inst, err := s.classRepo.GetWithAvailability(ctx, instanceID)
	if err != nil {
		return nil, nil, ErrClassNotFound
	}
	if inst.Status != class.StatusScheduled {
		return nil, nil, ErrClassNotFound
	}

	m, err := s.membershipRepo.GetActiveForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if rej := CheckEligibility(inst, m, s.now()); rej != nil {
		metrics.RecordBookingRejection(string(rej.Reason))
		return nil, rej, nil
	}

	usingPack := m.Type == membership.TypeClassPack

	b := &Booking{
		ID:              uuid.NewString(),
		ClassInstanceID: inst.ID,
		ClassID:         inst.ClassID,
		UserID:          userID,
		StartTime:       inst.StartTime,
		EndTime:         inst.EndTime,
		PriceCents:      PriceFor(m.Type, inst.PriceCents),
		PaymentStatus:   PaymentPending,
		Type:            TypeFor(m.Type),
	}

	created, err := s.repo.CreateConfirmed(ctx, b, usingPack)
	if err != nil {
		switch {
		case errors.Is(err, pack.ErrInsufficientCredits):
			rej := &Rejection{
				Reason:     ReasonNoPackCredits,
				Message:    "no class pack credits left",
				Suggestion: "top_up",
			}
			metrics.RecordBookingRejection(string(rej.Reason))
			return nil, rej, nil
		case errors.Is(err, ErrClassFull):
			rej := &Rejection{
				Reason:     ReasonClassFull,
				Message:    "this class is full",
				Suggestion: "waitlist",
			}
			metrics.RecordBookingRejection(string(rej.Reason))
			return nil, rej, nil
		case errors.Is(err, ErrAlreadyBooked):
			rej := &Rejection{
				Reason:  ReasonAlreadyBooked,
				Message: "you already have a booking for this class",
			}
			metrics.RecordBookingRejection(string(rej.Reason))
			return nil, rej, nil
		case errors.Is(err, ErrInstanceNotBookable):
			return nil, nil, ErrClassNotFound
		}
		return nil, nil, err
	}

	if usingPack && m.ID != 0 {
		if err := s.membershipRepo.IncrementClassesUsed(ctx, m.ID); err != nil {
			logger.Errorf("Failed to increment classes used for membership %d: %v", m.ID, err)
		}
	}

	metrics.RecordBooking(string(created.Type))
	s.notifyBookingConfirmed(ctx, userID, inst)

	return created, nil, nil
}

// Cancel releases the user's seat. A cancellation is the only event that
// frees a seat, so it is also the single trigger for waitlist promotion.
func (s *service) Cancel(ctx context.Context, userID int, bookingID string) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return ErrBookingNotFound
	}

	if b.UserID != userID {
		return ErrNotOwner
	}

	// Class-pack bookings get their credit back atomically with the cancel.
	if err := s.repo.Cancel(ctx, bookingID, b.Type == TypeClassPack); err != nil {
		if errors.Is(err, ErrBookingNotFoundOrAlreadyCancelled) {
			return ErrBookingNotFound
		}
		return err
	}

	metrics.RecordBookingCancellation()

	// Exactly one seat was freed, so promote at most one waitlist entry.
	promoted, err := s.promoter.PromoteForInstance(ctx, b.ClassInstanceID, 1)
	if err != nil {
		logger.Errorf("Waitlist promotion failed for instance %s: %v", b.ClassInstanceID, err)
	} else if promoted > 0 {
		logger.Infof("Promoted %d waitlist entries for instance %s", promoted, b.ClassInstanceID)
	}

	return nil
}

func (s *service) GetUserBookings(ctx context.Context, userID int) ([]BookingWithClass, error) {
	return s.repo.GetUserBookings(ctx, userID)
}

func (s *service) GetByInstance(ctx context.Context, instanceID string) ([]BookingWithClass, error) {
	return s.repo.GetByInstance(ctx, instanceID)
}

func (s *service) GetStatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error) {
	return s.repo.GetStatsByDay(ctx, from, to)
}

func (s *service) GetStatsByClass(ctx context.Context, from, to time.Time) ([]ClassStat, error) {
	return s.repo.GetStatsByClass(ctx, from, to)
}

func (s *service) notifyBookingConfirmed(ctx context.Context, userID int, inst *class.InstanceWithAvailability) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || u == nil {
		return
	}
	s.notifications.SendBookingConfirmation(ctx, u.Email, u.Name, inst.Name, inst.StartTime)
}
