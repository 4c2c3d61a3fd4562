package pack

import "context"

type Repository interface {
	GetOrCreateBalance(ctx context.Context, userID int) (*Balance, error)
	// AddTransaction applies delta to the user's credit balance inside one
	// transaction, failing with ErrInsufficientCredits when the balance
	// would go negative.
	AddTransaction(ctx context.Context, userID int, delta int, txType string) error
	GetTransactions(ctx context.Context, userID int, limit, offset int) ([]Transaction, error)
}
