package class

import (
	"sort"
	"time"
)

type SortKey string

const (
	SortByDate         SortKey = "date"
	SortByPopularity   SortKey = "popularity"
	SortByAvailability SortKey = "availability"
	SortByPrice        SortKey = "price"
)

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// Filters are AND-combined; zero values mean "no restriction".
type Filters struct {
	From          *time.Time
	To            *time.Time
	Category      string
	Level         string
	InstructorID  *int
	AvailableOnly bool
	TimeOfDay     TimeOfDay
	Tags          []string
	SortBy        SortKey
}

// Search applies the filters and then the single active sort key over the
// given instances.
func Search(instances []InstanceWithAvailability, f Filters) []InstanceWithAvailability {
	matched := make([]InstanceWithAvailability, 0, len(instances))
	for _, inst := range instances {
		if matches(inst, f) {
			matched = append(matched, inst)
		}
	}

	switch f.SortBy {
	case SortByPopularity:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].BookedCount > matched[j].BookedCount
		})
	case SortByAvailability:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].AvailableSpots > matched[j].AvailableSpots
		})
	case SortByPrice:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].PriceCents < matched[j].PriceCents
		})
	default:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].StartTime.Before(matched[j].StartTime)
		})
	}

	return matched
}

func matches(inst InstanceWithAvailability, f Filters) bool {
	if f.From != nil && inst.StartTime.Before(*f.From) {
		return false
	}
	if f.To != nil && inst.StartTime.After(*f.To) {
		return false
	}
	if f.Category != "" && inst.Category != f.Category {
		return false
	}
	if f.Level != "" && inst.Level != f.Level {
		return false
	}
	if f.InstructorID != nil {
		if inst.InstructorID == nil || *inst.InstructorID != *f.InstructorID {
			return false
		}
	}
	if f.AvailableOnly && inst.AvailableSpots <= 0 {
		return false
	}
	if f.TimeOfDay != "" && !inTimeOfDay(inst.StartTime, f.TimeOfDay) {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(inst.Tags, f.Tags) {
		return false
	}
	return true
}

// inTimeOfDay buckets by local start hour: morning [6,12), afternoon [12,17),
// evening [17,21).
func inTimeOfDay(t time.Time, bucket TimeOfDay) bool {
	hour := t.Hour()
	switch bucket {
	case Morning:
		return hour >= 6 && hour < 12
	case Afternoon:
		return hour >= 12 && hour < 17
	case Evening:
		return hour >= 17 && hour < 21
	}
	return true
}

func hasAnyTag(instTags []string, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range instTags {
			if t == w {
				return true
			}
		}
	}
	return false
}
