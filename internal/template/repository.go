package template

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrTemplateNotFound = errors.New("class template not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const templateColumns = `id, name, description, category, level, duration_minutes, capacity,
	price_cents, start_time_of_day, schedule_days, recurrence, instructor_id,
	instructor_name, studio_id, member_plus_only, x_pass_eligible, tags,
	requirements, created_at, updated_at`

func (r *repository) Create(ctx context.Context, t *ClassTemplate) (*ClassTemplate, error) {
	query := `
		INSERT INTO class_templates (
			name, description, category, level, duration_minutes, capacity,
			price_cents, start_time_of_day, schedule_days, recurrence,
			instructor_id, instructor_name, studio_id, member_plus_only,
			x_pass_eligible, tags, requirements
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + templateColumns

	var created ClassTemplate
	err := r.db.QueryRowxContext(ctx, query,
		t.Name, t.Description, t.Category, t.Level, t.DurationMinutes, t.Capacity,
		t.PriceCents, t.StartTimeOfDay, t.ScheduleDays, t.Recurrence,
		t.InstructorID, t.InstructorName, t.StudioID, t.MemberPlusOnly,
		t.XPassEligible, t.Tags, t.Requirements,
	).StructScan(&created)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*ClassTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM class_templates WHERE id = $1`

	var t ClassTemplate
	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) List(ctx context.Context, studioID int) ([]ClassTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM class_templates`
	args := []interface{}{}

	if studioID > 0 {
		query += ` WHERE studio_id = $1`
		args = append(args, studioID)
	}
	query += ` ORDER BY name`

	var templates []ClassTemplate
	if err := r.db.SelectContext(ctx, &templates, query, args...); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *repository) Update(ctx context.Context, t *ClassTemplate) (*ClassTemplate, error) {
	query := `
		UPDATE class_templates
		SET name = $1, description = $2, category = $3, level = $4,
			duration_minutes = $5, capacity = $6, price_cents = $7,
			start_time_of_day = $8, schedule_days = $9, member_plus_only = $10,
			x_pass_eligible = $11, tags = $12, requirements = $13, updated_at = NOW()
		WHERE id = $14
		RETURNING ` + templateColumns

	var updated ClassTemplate
	err := r.db.QueryRowxContext(ctx, query,
		t.Name, t.Description, t.Category, t.Level,
		t.DurationMinutes, t.Capacity, t.PriceCents,
		t.StartTimeOfDay, t.ScheduleDays, t.MemberPlusOnly,
		t.XPassEligible, t.Tags, t.Requirements, t.ID,
	).StructScan(&updated)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM class_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

func (r *repository) CountFutureInstances(ctx context.Context, id int, now time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM class_instances
		WHERE class_id = $1 AND start_time > $2 AND status = 'scheduled'
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query, id, now); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) CancelFutureInstances(ctx context.Context, id int, now time.Time) (int64, error) {
	query := `
		UPDATE class_instances
		SET status = 'cancelled'
		WHERE class_id = $1 AND start_time > $2 AND status = 'scheduled'
	`

	result, err := r.db.ExecContext(ctx, query, id, now)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *repository) ListInstructorAssignments(ctx context.Context, instructorID int, from time.Time) ([]Assignment, error) {
	query := `
		SELECT id AS instance_id, name AS class_name, start_time, end_time
		FROM class_instances
		WHERE instructor_id = $1 AND end_time > $2 AND status = 'scheduled'
		ORDER BY start_time
	`

	var assignments []Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, instructorID, from); err != nil {
		return nil, err
	}

	return assignments, nil
}
