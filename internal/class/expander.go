package class

import (
	"fmt"
	"time"

	"thryve/internal/template"
)

// InstanceID builds the deterministic id for one occurrence, derived from the
// template, the calendar date and the time of day. Re-expanding an
// overlapping window therefore yields the same ids, and the repository's
// upsert makes the whole operation idempotent.
func InstanceID(templateID int, date time.Time, startTimeOfDay string) string {
	return fmt.Sprintf("%d-%s-%s", templateID, date.Format("2006-01-02"), startTimeOfDay)
}

// GenerateInstances expands a template into concrete instances within
// [startDate, endDate], both inclusive. It is a pure function; persisting
// the result is the caller's responsibility.
//
//   - none:    exactly one instance on startDate, endDate is ignored
//   - daily:   one instance per day whose weekday is in schedule_days
//     (an empty schedule_days admits every day)
//   - weekly:  one instance every 7 days starting at startDate
//   - monthly: one instance on the same day of each month, skipping months
//     that do not have that day
func GenerateInstances(t *template.ClassTemplate, startDate, endDate time.Time) ([]Instance, error) {
	hour, minute, err := t.StartClock()
	if err != nil {
		return nil, fmt.Errorf("invalid start_time_of_day %q: %w", t.StartTimeOfDay, err)
	}

	at := func(day time.Time) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
	}

	var instances []Instance
	add := func(day time.Time) {
		start := at(day)
		instances = append(instances, Instance{
			ID:             InstanceID(t.ID, day, t.StartTimeOfDay),
			ClassID:        t.ID,
			Name:           t.Name,
			Category:       t.Category,
			Level:          t.Level,
			StartTime:      start,
			EndTime:        start.Add(time.Duration(t.DurationMinutes) * time.Minute),
			InstructorID:   t.InstructorID,
			InstructorName: t.InstructorName,
			Capacity:       t.Capacity,
			PriceCents:     t.PriceCents,
			MemberPlusOnly: t.MemberPlusOnly,
			XPassEligible:  t.XPassEligible,
			Tags:           t.Tags,
			Status:         StatusScheduled,
		})
	}

	switch t.Recurrence {
	case template.RecurrenceNone:
		add(startDate)

	case template.RecurrenceDaily:
		for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
			if t.HasScheduleDay(day.Weekday()) {
				add(day)
			}
		}

	case template.RecurrenceWeekly:
		for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 7) {
			add(day)
		}

	case template.RecurrenceMonthly:
		dayOfMonth := startDate.Day()
		for i := 0; ; i++ {
			day := startDate.AddDate(0, i, 0)
			if day.After(endDate) {
				break
			}
			// AddDate normalizes overflow (Jan 31 + 1 month = Mar 2/3);
			// skip months that lack the anchor day.
			if day.Day() != dayOfMonth {
				continue
			}
			add(day)
		}

	default:
		return nil, fmt.Errorf("unknown recurrence pattern %q", t.Recurrence)
	}

	return instances, nil
}
