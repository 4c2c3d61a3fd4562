package template

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
)

var (
	ErrHasFutureInstances = errors.New("template has future scheduled instances")
	ErrValidationFailed   = errors.New("template validation failed")
)

type Service interface {
	Create(ctx context.Context, req CreateTemplateRequest) (*ClassTemplate, ValidationResult, error)
	Validate(ctx context.Context, req CreateTemplateRequest) (ValidationResult, error)
	GetByID(ctx context.Context, id int) (*ClassTemplate, error)
	List(ctx context.Context, studioID int) ([]ClassTemplate, error)
	Update(ctx context.Context, id int, req UpdateTemplateRequest) (*ClassTemplate, error)
	Delete(ctx context.Context, id int, cascade bool) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, req CreateTemplateRequest) (*ClassTemplate, ValidationResult, error) {
	result, err := s.Validate(ctx, req)
	if err != nil {
		return nil, result, err
	}
	if !result.IsValid {
		return nil, result, ErrValidationFailed
	}

	t := &ClassTemplate{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Level:           req.Level,
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
		PriceCents:      req.PriceCents,
		StartTimeOfDay:  req.StartTimeOfDay,
		ScheduleDays:    pq.Int64Array(req.ScheduleDays),
		Recurrence:      RecurrencePattern(req.Recurrence),
		InstructorID:    req.InstructorID,
		InstructorName:  req.InstructorName,
		StudioID:        req.StudioID,
		MemberPlusOnly:  req.MemberPlusOnly,
		XPassEligible:   req.XPassEligible,
		Tags:            pq.StringArray(req.Tags),
		Requirements:    req.Requirements,
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, result, err
	}

	return created, result, nil
}

func (s *service) Validate(ctx context.Context, req CreateTemplateRequest) (ValidationResult, error) {
	first := s.firstOccurrence(req)

	var assignments []Assignment
	if req.InstructorID != nil {
		var err error
		assignments, err = s.repo.ListInstructorAssignments(ctx, *req.InstructorID, s.now())
		if err != nil {
			return ValidationResult{}, err
		}
	}

	return Validate(req, first, assignments), nil
}

func (s *service) GetByID(ctx context.Context, id int) (*ClassTemplate, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrTemplateNotFound
	}
	return t, nil
}

func (s *service) List(ctx context.Context, studioID int) ([]ClassTemplate, error) {
	return s.repo.List(ctx, studioID)
}

// Update mutates the template definition only. Instances already generated
// keep the capacity and price they were generated with.
func (s *service) Update(ctx context.Context, id int, req UpdateTemplateRequest) (*ClassTemplate, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrTemplateNotFound
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Category != nil {
		t.Category = *req.Category
	}
	if req.Level != nil {
		t.Level = *req.Level
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, ErrValidationFailed
		}
		t.DurationMinutes = *req.DurationMinutes
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrValidationFailed
		}
		t.Capacity = *req.Capacity
	}
	if req.PriceCents != nil {
		t.PriceCents = *req.PriceCents
	}
	if req.StartTimeOfDay != nil {
		if _, err := time.Parse("15:04", *req.StartTimeOfDay); err != nil {
			return nil, ErrValidationFailed
		}
		t.StartTimeOfDay = *req.StartTimeOfDay
	}
	if req.ScheduleDays != nil {
		t.ScheduleDays = pq.Int64Array(req.ScheduleDays)
	}
	if req.MemberPlusOnly != nil {
		t.MemberPlusOnly = *req.MemberPlusOnly
	}
	if req.XPassEligible != nil {
		t.XPassEligible = *req.XPassEligible
	}
	if req.Tags != nil {
		t.Tags = pq.StringArray(req.Tags)
	}
	if req.Requirements != nil {
		t.Requirements = *req.Requirements
	}

	return s.repo.Update(ctx, t)
}

// Delete refuses to remove a template that still has future scheduled
// instances unless cascade is set, in which case those instances are
// cancelled first.
func (s *service) Delete(ctx context.Context, id int, cascade bool) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrTemplateNotFound
	}

	count, err := s.repo.CountFutureInstances(ctx, id, s.now())
	if err != nil {
		return err
	}

	if count > 0 {
		if !cascade {
			return ErrHasFutureInstances
		}
		if _, err := s.repo.CancelFutureInstances(ctx, id, s.now()); err != nil {
			return err
		}
	}

	return s.repo.Delete(ctx, id)
}

// firstOccurrence finds the earliest time the template would produce an
// instance, used for instructor-conflict validation.
func (s *service) firstOccurrence(req CreateTemplateRequest) time.Time {
	now := s.now()

	parsed, err := time.Parse("15:04", req.StartTimeOfDay)
	if err != nil {
		return now
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if !day.After(now) {
		day = day.AddDate(0, 0, 1)
	}

	if RecurrencePattern(req.Recurrence) == RecurrenceDaily && len(req.ScheduleDays) > 0 {
		scheduled := make(map[time.Weekday]bool, len(req.ScheduleDays))
		for _, d := range req.ScheduleDays {
			scheduled[time.Weekday(d)] = true
		}
		for i := 0; i < 7; i++ {
			if scheduled[day.Weekday()] {
				break
			}
			day = day.AddDate(0, 0, 1)
		}
	}

	return day
}
