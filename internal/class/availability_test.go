package class

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithAvailability(t *testing.T) {
	tests := []struct {
		name          string
		capacity      int
		booked        int
		waitlisted    int
		wantAvailable int
		wantFull      bool
	}{
		{"open seats", 20, 5, 0, 15, false},
		{"exactly full", 20, 20, 3, 0, true},
		{"empty class", 20, 0, 0, 20, false},
		{"overbooked clamps to zero", 20, 25, 0, 0, true},
		{"one seat left", 10, 9, 2, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithAvailability(Instance{ID: "x", Capacity: tt.capacity}, tt.booked, tt.waitlisted)

			assert.Equal(t, tt.wantAvailable, got.AvailableSpots)
			assert.Equal(t, tt.wantFull, got.IsFull)
			assert.Equal(t, tt.booked, got.BookedCount)
			assert.Equal(t, tt.waitlisted, got.WaitlistCount)

			// available_spots is always capacity minus confirmed, floored at 0
			if tt.booked <= tt.capacity {
				assert.Equal(t, tt.capacity-tt.booked, got.AvailableSpots)
			}
		})
	}
}

func TestComputeAvailability(t *testing.T) {
	instances := []Instance{
		{ID: "a", Capacity: 10},
		{ID: "b", Capacity: 5},
		{ID: "c", Capacity: 8},
	}

	booked := map[string]int{"a": 3, "b": 5}
	waitlisted := map[string]int{"b": 4}

	got := ComputeAvailability(instances, booked, waitlisted)

	assert.Len(t, got, 3)
	assert.Equal(t, 7, got[0].AvailableSpots)
	assert.False(t, got[0].IsFull)

	assert.Equal(t, 0, got[1].AvailableSpots)
	assert.True(t, got[1].IsFull)
	assert.Equal(t, 4, got[1].WaitlistCount)

	// Missing map entries mean zero bookings.
	assert.Equal(t, 8, got[2].AvailableSpots)
}
