package template

import (
	"time"

	"github.com/lib/pq"
)

type RecurrencePattern string

const (
	RecurrenceNone    RecurrencePattern = "none"
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
)

func (p RecurrencePattern) Valid() bool {
	switch p {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// ClassTemplate is the reusable definition of a recurring class offering.
// Instances copy capacity and price at generation time, so later edits only
// affect occurrences that have not been generated yet.
type ClassTemplate struct {
	ID              int               `db:"id" json:"id"`
	Name            string            `db:"name" json:"name"`
	Description     string            `db:"description" json:"description"`
	Category        string            `db:"category" json:"category"`
	Level           string            `db:"level" json:"level"`
	DurationMinutes int               `db:"duration_minutes" json:"duration_minutes"`
	Capacity        int               `db:"capacity" json:"capacity"`
	PriceCents      int64             `db:"price_cents" json:"price_cents"`
	StartTimeOfDay  string            `db:"start_time_of_day" json:"start_time_of_day"`
	ScheduleDays    pq.Int64Array     `db:"schedule_days" json:"schedule_days"`
	Recurrence      RecurrencePattern `db:"recurrence" json:"recurrence"`
	InstructorID    *int              `db:"instructor_id" json:"instructor_id,omitempty"`
	InstructorName  string            `db:"instructor_name" json:"instructor_name"`
	StudioID        int               `db:"studio_id" json:"studio_id"`
	MemberPlusOnly  bool              `db:"member_plus_only" json:"member_plus_only"`
	XPassEligible   bool              `db:"x_pass_eligible" json:"x_pass_eligible"`
	Tags            pq.StringArray    `db:"tags" json:"tags"`
	Requirements    string            `db:"requirements" json:"requirements"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updated_at"`
}

// HasScheduleDay reports whether the weekday is listed in ScheduleDays.
// An empty ScheduleDays means every day qualifies.
func (t *ClassTemplate) HasScheduleDay(day time.Weekday) bool {
	if len(t.ScheduleDays) == 0 {
		return true
	}
	for _, d := range t.ScheduleDays {
		if time.Weekday(d) == day {
			return true
		}
	}
	return false
}

// StartClock parses StartTimeOfDay ("15:04") into hour and minute.
func (t *ClassTemplate) StartClock() (hour, minute int, err error) {
	parsed, err := time.Parse("15:04", t.StartTimeOfDay)
	if err != nil {
		return 0, 0, err
	}
	return parsed.Hour(), parsed.Minute(), nil
}

type CreateTemplateRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Level           string   `json:"level"`
	DurationMinutes int      `json:"duration_minutes" binding:"required"`
	Capacity        int      `json:"capacity" binding:"required"`
	PriceCents      int64    `json:"price_cents"`
	StartTimeOfDay  string   `json:"start_time_of_day" binding:"required"`
	ScheduleDays    []int64  `json:"schedule_days"`
	Recurrence      string   `json:"recurrence" binding:"required"`
	InstructorID    *int     `json:"instructor_id"`
	InstructorName  string   `json:"instructor_name"`
	StudioID        int      `json:"studio_id"`
	MemberPlusOnly  bool     `json:"member_plus_only"`
	XPassEligible   bool     `json:"x_pass_eligible"`
	Tags            []string `json:"tags"`
	Requirements    string   `json:"requirements"`
}

type UpdateTemplateRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Category        *string  `json:"category"`
	Level           *string  `json:"level"`
	DurationMinutes *int     `json:"duration_minutes"`
	Capacity        *int     `json:"capacity"`
	PriceCents      *int64   `json:"price_cents"`
	StartTimeOfDay  *string  `json:"start_time_of_day"`
	ScheduleDays    []int64  `json:"schedule_days"`
	MemberPlusOnly  *bool    `json:"member_plus_only"`
	XPassEligible   *bool    `json:"x_pass_eligible"`
	Tags            []string `json:"tags"`
	Requirements    *string  `json:"requirements"`
}

// ValidationResult is returned by Validate. Errors block persistence,
// warnings are advisory and never do.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
