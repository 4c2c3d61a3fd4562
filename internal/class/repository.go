package class

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrInstanceNotFound = errors.New("class instance not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const instanceColumns = `id, class_id, name, category, level, start_time, end_time,
	instructor_id, instructor_name, capacity, price_cents, member_plus_only,
	x_pass_eligible, tags, status, created_at`

// UpsertInstances inserts instances by their deterministic id, skipping ids
// that already exist so overlapping expansion windows stay idempotent.
// Returns the number of newly inserted rows.
func (r *repository) UpsertInstances(ctx context.Context, instances []Instance) (int, error) {
	if len(instances) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO class_instances (
			id, class_id, name, category, level, start_time, end_time,
			instructor_id, instructor_name, capacity, price_cents,
			member_plus_only, x_pass_eligible, tags, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO NOTHING
	`

	inserted := 0
	for _, inst := range instances {
		result, err := tx.ExecContext(ctx, query,
			inst.ID, inst.ClassID, inst.Name, inst.Category, inst.Level,
			inst.StartTime, inst.EndTime, inst.InstructorID, inst.InstructorName,
			inst.Capacity, inst.PriceCents, inst.MemberPlusOnly,
			inst.XPassEligible, inst.Tags, inst.Status,
		)
		if err != nil {
			return 0, err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return inserted, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Instance, error) {
	query := `SELECT ` + instanceColumns + ` FROM class_instances WHERE id = $1`

	var inst Instance
	if err := r.db.GetContext(ctx, &inst, query, id); err != nil {
		return nil, err
	}

	return &inst, nil
}

func (r *repository) GetWithAvailability(ctx context.Context, id string) (*InstanceWithAvailability, error) {
	query := `
		SELECT ` + instanceColumns + `,
			(SELECT COUNT(*) FROM bookings b
			 WHERE b.class_instance_id = class_instances.id AND b.status = 'confirmed') AS booked_count,
			(SELECT COUNT(*) FROM waitlist_entries w
			 WHERE w.class_instance_id = class_instances.id AND w.status = 'active') AS waitlist_count
		FROM class_instances
		WHERE id = $1
	`

	var row InstanceWithAvailability
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}

	derived := WithAvailability(row.Instance, row.BookedCount, row.WaitlistCount)
	return &derived, nil
}

func (r *repository) ListWithAvailability(ctx context.Context, from, to time.Time) ([]InstanceWithAvailability, error) {
	query := `
		SELECT ` + instanceColumns + `,
			(SELECT COUNT(*) FROM bookings b
			 WHERE b.class_instance_id = class_instances.id AND b.status = 'confirmed') AS booked_count,
			(SELECT COUNT(*) FROM waitlist_entries w
			 WHERE w.class_instance_id = class_instances.id AND w.status = 'active') AS waitlist_count
		FROM class_instances
		WHERE status = 'scheduled' AND start_time >= $1 AND start_time <= $2
		ORDER BY start_time
	`

	var rows []InstanceWithAvailability
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, err
	}

	result := make([]InstanceWithAvailability, 0, len(rows))
	for _, row := range rows {
		result = append(result, WithAvailability(row.Instance, row.BookedCount, row.WaitlistCount))
	}

	return result, nil
}

// Cancel marks the instance cancelled and, in the same transaction, cancels
// its confirmed bookings and expires its active waitlist entries.
func (r *repository) Cancel(ctx context.Context, id string) (*CancelResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE class_instances SET status = 'cancelled' WHERE id = $1 AND status = 'scheduled'`, id)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrInstanceNotFound
	}

	bookings, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = 'cancelled' WHERE class_instance_id = $1 AND status = 'confirmed'`, id)
	if err != nil {
		return nil, err
	}
	bookingsCancelled, err := bookings.RowsAffected()
	if err != nil {
		return nil, err
	}

	waitlist, err := tx.ExecContext(ctx,
		`UPDATE waitlist_entries SET status = 'expired' WHERE class_instance_id = $1 AND status IN ('active', 'promoted')`, id)
	if err != nil {
		return nil, err
	}
	waitlistExpired, err := waitlist.RowsAffected()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &CancelResult{
		BookingsCancelled: bookingsCancelled,
		WaitlistExpired:   waitlistExpired,
	}, nil
}
