package pack

import "time"

// Balance is a user's prepaid class-pack credit balance.
type Balance struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Credits   int       `db:"credits" json:"credits"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Transaction struct {
	ID           int       `db:"id" json:"id"`
	BalanceID    int       `db:"balance_id" json:"balance_id"`
	Delta        int       `db:"delta" json:"delta"`
	Type         string    `db:"type" json:"type"`
	CreditsAfter int       `db:"credits_after" json:"credits_after"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type TopUpRequest struct {
	Credits int `json:"credits" binding:"required,min=1"`
}
