package template

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, t *ClassTemplate) (*ClassTemplate, error)
	GetByID(ctx context.Context, id int) (*ClassTemplate, error)
	List(ctx context.Context, studioID int) ([]ClassTemplate, error)
	Update(ctx context.Context, t *ClassTemplate) (*ClassTemplate, error)
	Delete(ctx context.Context, id int) error
	CountFutureInstances(ctx context.Context, id int, now time.Time) (int, error)
	CancelFutureInstances(ctx context.Context, id int, now time.Time) (int64, error)
	ListInstructorAssignments(ctx context.Context, instructorID int, from time.Time) ([]Assignment, error)
}
