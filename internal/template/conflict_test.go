package template

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical blocks", at(0), at(60), at(0), at(60), true},
		{"one minute overlap", at(0), at(60), at(59), at(120), true},
		{"contained block", at(0), at(60), at(15), at(30), true},
		{"back to back is no conflict", at(0), at(60), at(60), at(120), false},
		{"disjoint", at(0), at(60), at(90), at(120), false},
		{"reversed back to back", at(60), at(120), at(0), at(60), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestFindConflicts(t *testing.T) {
	base := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	existing := []Assignment{
		{InstanceID: "a", ClassName: "Spin", StartTime: base, EndTime: base.Add(time.Hour)},
		{InstanceID: "b", ClassName: "Yoga", StartTime: base.Add(time.Hour), EndTime: base.Add(2 * time.Hour)},
		{InstanceID: "c", ClassName: "HIIT", StartTime: base.Add(3 * time.Hour), EndTime: base.Add(4 * time.Hour)},
	}

	// Proposed 10:30-11:30 clips both Spin and Yoga but not HIIT.
	conflicts := FindConflicts(base.Add(30*time.Minute), base.Add(90*time.Minute), existing)

	require.Len(t, conflicts, 2)
	assert.Equal(t, "a", conflicts[0].InstanceID)
	assert.Equal(t, "b", conflicts[1].InstanceID)
}

func TestFindConflicts_NoneWhenEmpty(t *testing.T) {
	base := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	assert.Empty(t, FindConflicts(base, base.Add(time.Hour), nil))
}
