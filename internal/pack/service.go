package pack

import "context"

type Service interface {
	GetBalance(ctx context.Context, userID int) (*Balance, error)
	TopUp(ctx context.Context, userID int, credits int) (*Balance, error)
	ListTransactions(ctx context.Context, userID int, limit, offset int) ([]Transaction, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetBalance(ctx context.Context, userID int) (*Balance, error) {
	return s.repo.GetOrCreateBalance(ctx, userID)
}

func (s *service) TopUp(ctx context.Context, userID int, credits int) (*Balance, error) {
	if err := s.repo.AddTransaction(ctx, userID, credits, "top_up"); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreateBalance(ctx, userID)
}

func (s *service) ListTransactions(ctx context.Context, userID int, limit, offset int) ([]Transaction, error) {
	return s.repo.GetTransactions(ctx, userID, limit, offset)
}
