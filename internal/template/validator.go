package template

import (
	"fmt"
	"time"
)

const (
	capacityWarnThreshold = 50
	durationWarnThreshold = 120
)

// Validate runs the pre-flight checks on a proposed template. The
// existingAssignments are the instructor's current commitments within the
// window the template would be expanded into; pass nil when no instructor
// is assigned.
func Validate(req CreateTemplateRequest, firstOccurrence time.Time, existingAssignments []Assignment) ValidationResult {
	result := ValidationResult{IsValid: true}

	if req.Name == "" {
		result.Errors = append(result.Errors, "name is required")
	}

	if _, err := time.Parse("15:04", req.StartTimeOfDay); err != nil {
		result.Errors = append(result.Errors, "start_time_of_day must be a valid HH:MM time")
	}

	if req.DurationMinutes <= 0 {
		result.Errors = append(result.Errors, "duration_minutes must be positive")
	}

	if req.Capacity <= 0 {
		result.Errors = append(result.Errors, "capacity must be positive")
	}

	if !RecurrencePattern(req.Recurrence).Valid() {
		result.Errors = append(result.Errors, fmt.Sprintf("recurrence %q is not one of none, daily, weekly, monthly", req.Recurrence))
	}

	if req.InstructorID != nil && req.DurationMinutes > 0 {
		end := firstOccurrence.Add(time.Duration(req.DurationMinutes) * time.Minute)
		for _, c := range FindConflicts(firstOccurrence, end, existingAssignments) {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"instructor conflict with %q (%s - %s)",
				c.ClassName,
				c.StartTime.Format(time.RFC3339),
				c.EndTime.Format(time.RFC3339),
			))
		}
	}

	if req.Capacity > capacityWarnThreshold {
		result.Warnings = append(result.Warnings, fmt.Sprintf("capacity %d is unusually large, ensure the studio has adequate space", req.Capacity))
	}

	if req.DurationMinutes > durationWarnThreshold {
		result.Warnings = append(result.Warnings, fmt.Sprintf("duration of %d minutes is long for a single class", req.DurationMinutes))
	}

	result.IsValid = len(result.Errors) == 0
	return result
}
