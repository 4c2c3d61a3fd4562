package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"thryve/internal/pack"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrClassFull                         = errors.New("class is full")
	ErrAlreadyBooked                     = errors.New("user already has a booking for this class")
	ErrInstanceNotBookable               = errors.New("class instance is not bookable")
	ErrBookingNotFoundOrAlreadyCancelled = errors.New("booking not found or already cancelled")
)

const uniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bookingColumns = `id, class_instance_id, class_id, user_id, start_time, end_time,
	price_cents, status, payment_status, booking_type, created_at`

func (r *repository) CreateConfirmed(ctx context.Context, b *Booking, debitPackCredit bool) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Lock the instance row so the seat count cannot move between the
	// check and the insert.
	var capacity int
	err = tx.QueryRowxContext(ctx,
		`SELECT capacity FROM class_instances WHERE id = $1 AND status = 'scheduled' FOR UPDATE`,
		b.ClassInstanceID,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInstanceNotBookable
		}
		return nil, err
	}

	var confirmed int
	err = tx.QueryRowxContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE class_instance_id = $1 AND status = 'confirmed'`,
		b.ClassInstanceID,
	).Scan(&confirmed)
	if err != nil {
		return nil, err
	}

	if confirmed >= capacity {
		return nil, ErrClassFull
	}

	query := `
		INSERT INTO bookings (
			id, class_instance_id, class_id, user_id, start_time, end_time,
			price_cents, status, payment_status, booking_type
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'confirmed', $8, $9)
		RETURNING ` + bookingColumns

	var created Booking
	err = tx.QueryRowxContext(ctx, query,
		b.ID, b.ClassInstanceID, b.ClassID, b.UserID, b.StartTime, b.EndTime,
		b.PriceCents, b.PaymentStatus, b.Type,
	).StructScan(&created)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrAlreadyBooked
		}
		return nil, err
	}

	// The credit moves in the same transaction as the insert, so a refused
	// debit rolls the booking back and a refused booking never costs a credit.
	if debitPackCredit {
		if err := pack.ApplyTransaction(ctx, tx, b.UserID, -1, "class_booking"); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) Cancel(ctx context.Context, id string, refundPackCredit bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var userID int
	err = tx.QueryRowxContext(ctx,
		`UPDATE bookings
		 SET status = 'cancelled'
		 WHERE id = $1 AND status = 'confirmed'
		 RETURNING user_id`,
		id,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFoundOrAlreadyCancelled
		}
		return err
	}

	if refundPackCredit {
		if err := pack.ApplyTransaction(ctx, tx, userID, 1, "booking_refund"); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) UserHasBookingForInstance(ctx context.Context, userID int, instanceID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND class_instance_id = $2 AND status = 'confirmed'
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, instanceID); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID int) ([]BookingWithClass, error) {
	query := `
		SELECT
			b.id, b.class_instance_id, b.class_id, b.user_id, b.start_time,
			b.end_time, b.price_cents, b.status, b.payment_status,
			b.booking_type, b.created_at,
			ci.name AS class_name,
			ci.instructor_name
		FROM bookings b
		JOIN class_instances ci ON b.class_instance_id = ci.id
		WHERE b.user_id = $1
		ORDER BY b.start_time DESC
	`

	var bookings []BookingWithClass
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) GetByInstance(ctx context.Context, instanceID string) ([]BookingWithClass, error) {
	query := `
		SELECT
			b.id, b.class_instance_id, b.class_id, b.user_id, b.start_time,
			b.end_time, b.price_cents, b.status, b.payment_status,
			b.booking_type, b.created_at,
			ci.name AS class_name,
			ci.instructor_name
		FROM bookings b
		JOIN class_instances ci ON b.class_instance_id = ci.id
		WHERE b.class_instance_id = $1
		ORDER BY b.created_at
	`

	var bookings []BookingWithClass
	if err := r.db.SelectContext(ctx, &bookings, query, instanceID); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) GetStatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error) {
	query := `
		SELECT
			date_trunc('day', start_time) AS day,
			COUNT(*) AS count,
			COALESCE(SUM(price_cents), 0) AS revenue_cents
		FROM bookings
		WHERE status = 'confirmed' AND start_time >= $1 AND start_time <= $2
		GROUP BY 1
		ORDER BY 1
	`

	var stats []DayStat
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *repository) GetStatsByClass(ctx context.Context, from, to time.Time) ([]ClassStat, error) {
	query := `
		SELECT
			b.class_id,
			ci.name AS class_name,
			COUNT(*) AS count
		FROM bookings b
		JOIN class_instances ci ON b.class_instance_id = ci.id
		WHERE b.status = 'confirmed' AND b.start_time >= $1 AND b.start_time <= $2
		GROUP BY b.class_id, ci.name
		ORDER BY count DESC
	`

	var stats []ClassStat
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}

	return stats, nil
}
