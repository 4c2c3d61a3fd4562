package membership

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidType = errors.New("invalid membership type")

type Service interface {
	GetForUser(ctx context.Context, userID int) (*Membership, error)
	Create(ctx context.Context, req CreateMembershipRequest) (*Membership, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetForUser(ctx context.Context, userID int) (*Membership, error) {
	return s.repo.GetActiveForUser(ctx, userID)
}

func (s *service) Create(ctx context.Context, req CreateMembershipRequest) (*Membership, error) {
	t := Type(req.Type)
	switch t {
	case TypeDropIn, TypeUnlimited, TypeClassPack, TypeMemberPlus:
	default:
		return nil, ErrInvalidType
	}

	validUntil, err := time.Parse("2006-01-02", req.ValidUntil)
	if err != nil {
		return nil, err
	}

	m := &Membership{
		UserID:     req.UserID,
		Type:       t,
		ValidUntil: validUntil,
	}

	// Class packs meter usage, the other types do not.
	if t == TypeClassPack {
		allowed := 10
		m.ClassesAllowed = &allowed
	}

	return s.repo.Create(ctx, m)
}
