package class

import (
	"time"

	"github.com/lib/pq"
)

type InstanceStatus string

const (
	StatusScheduled InstanceStatus = "scheduled"
	StatusCancelled InstanceStatus = "cancelled"
)

// Instance is one concrete, bookable occurrence generated from a template.
// Capacity and price are copied from the template at generation time and do
// not change when the template is edited afterwards.
type Instance struct {
	ID             string         `db:"id" json:"id"`
	ClassID        int            `db:"class_id" json:"class_id"`
	Name           string         `db:"name" json:"name"`
	Category       string         `db:"category" json:"category"`
	Level          string         `db:"level" json:"level"`
	StartTime      time.Time      `db:"start_time" json:"start_time"`
	EndTime        time.Time      `db:"end_time" json:"end_time"`
	InstructorID   *int           `db:"instructor_id" json:"instructor_id,omitempty"`
	InstructorName string         `db:"instructor_name" json:"instructor_name"`
	Capacity       int            `db:"capacity" json:"capacity"`
	PriceCents     int64          `db:"price_cents" json:"price_cents"`
	MemberPlusOnly bool           `db:"member_plus_only" json:"member_plus_only"`
	XPassEligible  bool           `db:"x_pass_eligible" json:"x_pass_eligible"`
	Tags           pq.StringArray `db:"tags" json:"tags"`
	Status         InstanceStatus `db:"status" json:"status"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// InstanceWithAvailability carries the derived seat counts. AvailableSpots
// is always recomputed from capacity and the confirmed-booking count, never
// read back from storage.
type InstanceWithAvailability struct {
	Instance
	BookedCount    int  `db:"booked_count" json:"booked_count"`
	WaitlistCount  int  `db:"waitlist_count" json:"waitlist_count"`
	AvailableSpots int  `json:"available_spots"`
	IsFull         bool `json:"is_full"`
}

type GenerateInstancesRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date"`
}
