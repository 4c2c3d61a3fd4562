package membership

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetActiveForUser(ctx context.Context, userID int) (*Membership, error) {
	query := `
		SELECT id, user_id, type, status, classes_used, classes_allowed,
			valid_from, valid_until, created_at, updated_at
		FROM memberships
		WHERE user_id = $1 AND status = 'active' AND valid_until > NOW()
		ORDER BY valid_until DESC
		LIMIT 1
	`

	var m Membership
	err := r.db.GetContext(ctx, &m, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return &Membership{UserID: userID, Type: TypeNone}, nil
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) Create(ctx context.Context, m *Membership) (*Membership, error) {
	query := `
		INSERT INTO memberships (user_id, type, status, classes_allowed, valid_from, valid_until)
		VALUES ($1, $2, 'active', $3, NOW(), $4)
		RETURNING id, user_id, type, status, classes_used, classes_allowed,
			valid_from, valid_until, created_at, updated_at
	`

	var created Membership
	err := r.db.QueryRowxContext(ctx, query, m.UserID, m.Type, m.ClassesAllowed, m.ValidUntil).StructScan(&created)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) IncrementClassesUsed(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE memberships SET classes_used = classes_used + 1, updated_at = NOW() WHERE id = $1`, id)
	return err
}
