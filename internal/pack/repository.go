package pack

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrInsufficientCredits = errors.New("insufficient pack credits")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrCreateBalance(ctx context.Context, userID int) (*Balance, error) {
	b := &Balance{}
	err := r.db.GetContext(ctx, b, `SELECT * FROM pack_balances WHERE user_id = $1`, userID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	err = r.db.QueryRowxContext(ctx,
		`INSERT INTO pack_balances (user_id)
		 VALUES ($1)
		 RETURNING id, user_id, credits, created_at, updated_at`,
		userID,
	).StructScan(b)
	if err != nil {
		return nil, err
	}

	return b, nil
}

func (r *repository) AddTransaction(ctx context.Context, userID int, delta int, txType string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := ApplyTransaction(ctx, tx, userID, delta, txType); err != nil {
		return err
	}

	return tx.Commit()
}

// ApplyTransaction records a credit movement inside the caller's transaction.
// The balance row stays locked until the caller commits, so the movement is
// atomic with whatever the caller pairs it with.
func ApplyTransaction(ctx context.Context, tx *sqlx.Tx, userID int, delta int, txType string) error {
	var b Balance
	err := tx.QueryRowxContext(ctx,
		`SELECT id, user_id, credits, created_at, updated_at
		 FROM pack_balances
		 WHERE user_id = $1
		 FOR UPDATE`,
		userID,
	).StructScan(&b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = tx.QueryRowxContext(ctx,
				`INSERT INTO pack_balances (user_id)
				 VALUES ($1)
				 RETURNING id, user_id, credits, created_at, updated_at`,
				userID,
			).StructScan(&b)
			if err != nil {
				return err
			}
		} else {
			return err
		}
	}

	newCredits := b.Credits + delta
	if newCredits < 0 {
		return ErrInsufficientCredits
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE pack_balances
		 SET credits = $1, updated_at = NOW()
		 WHERE id = $2`,
		newCredits, b.ID,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO pack_transactions (balance_id, delta, type, credits_after)
		 VALUES ($1, $2, $3, $4)`,
		b.ID, delta, txType, newCredits,
	)

	return err
}

func (r *repository) GetTransactions(ctx context.Context, userID int, limit, offset int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 50
	}

	var balanceID int
	err := r.db.GetContext(ctx, &balanceID, `SELECT id FROM pack_balances WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []Transaction{}, nil
		}
		return nil, err
	}

	var txs []Transaction
	err = r.db.SelectContext(ctx, &txs, `
		SELECT id, balance_id, delta, type, credits_after, created_at
		FROM pack_transactions
		WHERE balance_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, balanceID, limit, offset)
	if err != nil {
		return nil, err
	}

	return txs, nil
}
