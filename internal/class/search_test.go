package class

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchFixtures() []InstanceWithAvailability {
	instructorA := 1
	instructorB := 2

	at := func(day, hour int) time.Time {
		return time.Date(2024, time.June, day, hour, 0, 0, 0, time.UTC)
	}

	return []InstanceWithAvailability{
		WithAvailability(Instance{
			ID: "spin-1", Category: "cycling", Level: "advanced",
			StartTime: at(3, 7), InstructorID: &instructorA,
			Capacity: 10, PriceCents: 1500, Tags: []string{"cardio", "high-intensity"},
		}, 10, 2),
		WithAvailability(Instance{
			ID: "yoga-1", Category: "yoga", Level: "beginner",
			StartTime: at(4, 9), InstructorID: &instructorB,
			Capacity: 20, PriceCents: 2000, Tags: []string{"relax"},
		}, 5, 0),
		WithAvailability(Instance{
			ID: "yoga-2", Category: "yoga", Level: "beginner",
			StartTime: at(5, 18), InstructorID: &instructorB,
			Capacity: 20, PriceCents: 2500, Tags: []string{"relax", "candlelight"},
		}, 18, 1),
		WithAvailability(Instance{
			ID: "hiit-1", Category: "hiit", Level: "intermediate",
			StartTime: at(6, 13), InstructorID: &instructorA,
			Capacity: 15, PriceCents: 1000, Tags: []string{"cardio"},
		}, 1, 0),
	}
}

func TestSearch_CategoryFilter(t *testing.T) {
	got := Search(searchFixtures(), Filters{Category: "yoga"})

	require.Len(t, got, 2)
	assert.Equal(t, "yoga-1", got[0].ID)
	assert.Equal(t, "yoga-2", got[1].ID)
}

func TestSearch_AvailableOnly(t *testing.T) {
	got := Search(searchFixtures(), Filters{AvailableOnly: true})

	require.Len(t, got, 3)
	for _, inst := range got {
		assert.Greater(t, inst.AvailableSpots, 0)
	}
}

func TestSearch_InstructorFilter(t *testing.T) {
	instructorA := 1
	got := Search(searchFixtures(), Filters{InstructorID: &instructorA})

	require.Len(t, got, 2)
	assert.Equal(t, "spin-1", got[0].ID)
	assert.Equal(t, "hiit-1", got[1].ID)
}

func TestSearch_DateWindow(t *testing.T) {
	from := time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.June, 5, 23, 0, 0, 0, time.UTC)

	got := Search(searchFixtures(), Filters{From: &from, To: &to})

	require.Len(t, got, 2)
	assert.Equal(t, "yoga-1", got[0].ID)
	assert.Equal(t, "yoga-2", got[1].ID)
}

func TestSearch_TimeOfDayBuckets(t *testing.T) {
	tests := []struct {
		bucket  TimeOfDay
		wantIDs []string
	}{
		{Morning, []string{"spin-1", "yoga-1"}},
		{Afternoon, []string{"hiit-1"}},
		{Evening, []string{"yoga-2"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			got := Search(searchFixtures(), Filters{TimeOfDay: tt.bucket})
			ids := make([]string, 0, len(got))
			for _, inst := range got {
				ids = append(ids, inst.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSearch_TagsMatchAny(t *testing.T) {
	got := Search(searchFixtures(), Filters{Tags: []string{"candlelight", "high-intensity"}})

	require.Len(t, got, 2)
	assert.Equal(t, "spin-1", got[0].ID)
	assert.Equal(t, "yoga-2", got[1].ID)
}

func TestSearch_SortByPrice(t *testing.T) {
	got := Search(searchFixtures(), Filters{SortBy: SortByPrice})

	require.Len(t, got, 4)
	assert.Equal(t, "hiit-1", got[0].ID)
	assert.Equal(t, "spin-1", got[1].ID)
	assert.Equal(t, "yoga-1", got[2].ID)
	assert.Equal(t, "yoga-2", got[3].ID)
}

func TestSearch_SortByPopularity(t *testing.T) {
	got := Search(searchFixtures(), Filters{SortBy: SortByPopularity})

	require.Len(t, got, 4)
	assert.Equal(t, "yoga-2", got[0].ID)
	assert.Equal(t, "spin-1", got[1].ID)
}

func TestSearch_SortByAvailability(t *testing.T) {
	got := Search(searchFixtures(), Filters{SortBy: SortByAvailability})

	require.Len(t, got, 4)
	assert.Equal(t, "yoga-1", got[0].ID)
	assert.Equal(t, "hiit-1", got[1].ID)
	assert.Equal(t, "spin-1", got[3].ID)
}

func TestSearch_DefaultSortIsDate(t *testing.T) {
	shuffled := searchFixtures()
	shuffled[0], shuffled[3] = shuffled[3], shuffled[0]

	got := Search(shuffled, Filters{})

	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].StartTime.Before(got[i-1].StartTime))
	}
}
