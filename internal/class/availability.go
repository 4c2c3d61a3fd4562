package class

// WithAvailability derives the seat counts for a single instance from the
// current confirmed-booking and active-waitlist counts.
func WithAvailability(inst Instance, bookedCount, waitlistCount int) InstanceWithAvailability {
	available := inst.Capacity - bookedCount
	if available < 0 {
		available = 0
	}

	return InstanceWithAvailability{
		Instance:       inst,
		BookedCount:    bookedCount,
		WaitlistCount:  waitlistCount,
		AvailableSpots: available,
		IsFull:         available == 0,
	}
}

// ComputeAvailability derives seat counts for a set of instances.
// bookedByInstance and waitlistedByInstance map instance id to the number of
// confirmed bookings and active waitlist entries respectively. The result is
// read-only and must be recomputed on every read; cached available-spot
// values are never trusted for admission decisions.
func ComputeAvailability(instances []Instance, bookedByInstance, waitlistedByInstance map[string]int) []InstanceWithAvailability {
	result := make([]InstanceWithAvailability, 0, len(instances))
	for _, inst := range instances {
		result = append(result, WithAvailability(inst, bookedByInstance[inst.ID], waitlistedByInstance[inst.ID]))
	}
	return result
}
