package template

import "time"

// Assignment is one block of time an instructor is already committed to.
type Assignment struct {
	InstanceID string    `db:"instance_id" json:"instance_id"`
	ClassName  string    `db:"class_name" json:"class_name"`
	StartTime  time.Time `db:"start_time" json:"start_time"`
	EndTime    time.Time `db:"end_time" json:"end_time"`
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Half-open semantics: a class ending exactly when another starts is not
// a conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindConflicts returns the assignments that overlap the proposed
// [start, end) block.
func FindConflicts(start, end time.Time, existing []Assignment) []Assignment {
	var conflicts []Assignment
	for _, a := range existing {
		if Overlaps(start, end, a.StartTime, a.EndTime) {
			conflicts = append(conflicts, a)
		}
	}
	return conflicts
}
