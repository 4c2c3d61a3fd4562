package waitlist

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"thryve/internal/booking"
	"thryve/internal/membership"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrEntryNotFoundOrNotActive = errors.New("waitlist entry not found or not active")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const entryColumns = `id, class_instance_id, user_id, position, status, auto_book,
	notify_email, notify_sms, promotion_expires_at, created_at`

func (r *repository) Create(ctx context.Context, e *Entry) (*Entry, error) {
	query := `
		INSERT INTO waitlist_entries (
			id, class_instance_id, user_id, position, status, auto_book,
			notify_email, notify_sms
		)
		VALUES ($1, $2, $3, $4, 'active', $5, $6, $7)
		RETURNING ` + entryColumns

	var created Entry
	err := r.db.QueryRowxContext(ctx, query,
		e.ID, e.ClassInstanceID, e.UserID, e.Position, e.AutoBook,
		e.NotifyEmail, e.NotifySMS,
	).StructScan(&created)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM waitlist_entries WHERE id = $1`

	var e Entry
	if err := r.db.GetContext(ctx, &e, query, id); err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *repository) Cancel(ctx context.Context, id string) error {
	query := `
		UPDATE waitlist_entries
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'active'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrEntryNotFoundOrNotActive
	}

	return nil
}

func (r *repository) CountActiveForInstance(ctx context.Context, instanceID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM waitlist_entries
		WHERE class_instance_id = $1 AND status = 'active'
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query, instanceID); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) ListForInstance(ctx context.Context, instanceID string) ([]Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM waitlist_entries
		WHERE class_instance_id = $1
		ORDER BY created_at
	`

	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, query, instanceID); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *repository) GetUserEntries(ctx context.Context, userID int) ([]Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM waitlist_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *repository) MarkPromotionConsumed(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE waitlist_entries SET promotion_expires_at = NULL WHERE id = $1`, id)
	return err
}

func (r *repository) PromoteForInstance(ctx context.Context, instanceID string, freedSeats int, confirmWindow time.Duration) ([]Promotion, error) {
	if freedSeats <= 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// The instance row lock serializes promotion runs with each other and
	// with booking admission for this instance.
	var inst struct {
		Capacity   int       `db:"capacity"`
		ClassID    int       `db:"class_id"`
		StartTime  time.Time `db:"start_time"`
		EndTime    time.Time `db:"end_time"`
		PriceCents int64     `db:"price_cents"`
	}
	err = tx.QueryRowxContext(ctx,
		`SELECT capacity, class_id, start_time, end_time, price_cents
		 FROM class_instances
		 WHERE id = $1 AND status = 'scheduled'
		 FOR UPDATE`,
		instanceID,
	).StructScan(&inst)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Instance cancelled or gone, nothing to promote into.
			return nil, nil
		}
		return nil, err
	}

	// Overdue manual confirmations release their claim first.
	_, err = tx.ExecContext(ctx,
		`UPDATE waitlist_entries
		 SET status = 'expired'
		 WHERE class_instance_id = $1 AND status = 'promoted'
			AND auto_book = false
			AND promotion_expires_at IS NOT NULL
			AND promotion_expires_at < NOW()`,
		instanceID,
	)
	if err != nil {
		return nil, err
	}

	// Never promote past what is actually open, even if the caller
	// over-reports freed seats.
	var confirmed int
	err = tx.QueryRowxContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE class_instance_id = $1 AND status = 'confirmed'`,
		instanceID,
	).Scan(&confirmed)
	if err != nil {
		return nil, err
	}

	open := inst.Capacity - confirmed
	if freedSeats > open {
		freedSeats = open
	}
	if freedSeats <= 0 {
		return nil, tx.Commit()
	}

	// created_at is authoritative for ordering; the stored position is a
	// display hint that is never renumbered.
	var candidates []Entry
	err = tx.SelectContext(ctx, &candidates,
		`SELECT `+entryColumns+`
		 FROM waitlist_entries
		 WHERE class_instance_id = $1 AND status = 'active'
		 ORDER BY created_at, id
		 LIMIT $2
		 FOR UPDATE`,
		instanceID, freedSeats,
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var promotions []Promotion

	for _, e := range candidates {
		if e.AutoBook {
			var memberType string
			err = tx.QueryRowxContext(ctx,
				`SELECT type FROM memberships
				 WHERE user_id = $1 AND status = 'active' AND valid_until > NOW()
				 ORDER BY valid_until DESC
				 LIMIT 1`,
				e.UserID,
			).Scan(&memberType)
			if errors.Is(err, sql.ErrNoRows) {
				memberType = string(membership.TypeNone)
			} else if err != nil {
				return nil, err
			}

			var b booking.Booking
			err = tx.QueryRowxContext(ctx,
				`INSERT INTO bookings (
					id, class_instance_id, class_id, user_id, start_time,
					end_time, price_cents, status, payment_status, booking_type
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, 'confirmed', 'pending', 'waitlist_promotion')
				RETURNING id, class_instance_id, class_id, user_id, start_time, end_time,
					price_cents, status, payment_status, booking_type, created_at`,
				uuid.NewString(), instanceID, inst.ClassID, e.UserID,
				inst.StartTime, inst.EndTime,
				booking.PriceFor(membership.Type(memberType), inst.PriceCents),
			).StructScan(&b)
			if err != nil {
				return nil, err
			}

			if _, err = tx.ExecContext(ctx,
				`UPDATE waitlist_entries SET status = 'promoted' WHERE id = $1`, e.ID); err != nil {
				return nil, err
			}

			e.Status = StatusPromoted
			promotions = append(promotions, Promotion{Entry: e, Booking: &b})
		} else {
			deadline := now.Add(confirmWindow)
			if _, err = tx.ExecContext(ctx,
				`UPDATE waitlist_entries
				 SET status = 'promoted', promotion_expires_at = $1
				 WHERE id = $2`,
				deadline, e.ID); err != nil {
				return nil, err
			}

			e.Status = StatusPromoted
			e.PromotionExpiresAt = &deadline
			promotions = append(promotions, Promotion{Entry: e})
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return promotions, nil
}
