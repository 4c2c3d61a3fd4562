package booking

import "time"

type Status string
type PaymentStatus string
type Type string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"

	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"

	TypeDropIn              Type = "drop_in"
	TypeUnlimitedMembership Type = "unlimited_membership"
	TypeClassPack           Type = "class_pack"
	TypeMemberPlus          Type = "member_plus"
	TypeWaitlistPromotion   Type = "waitlist_promotion"
)

// Booking is a confirmed reservation of one seat in one class instance.
// Start and end times are copied from the instance at booking time so the
// record stays meaningful if the instance changes later.
type Booking struct {
	ID              string        `db:"id" json:"id"`
	ClassInstanceID string        `db:"class_instance_id" json:"class_instance_id"`
	ClassID         int           `db:"class_id" json:"class_id"`
	UserID          int           `db:"user_id" json:"user_id"`
	StartTime       time.Time     `db:"start_time" json:"start_time"`
	EndTime         time.Time     `db:"end_time" json:"end_time"`
	PriceCents      int64         `db:"price_cents" json:"price_cents"`
	Status          Status        `db:"status" json:"status"`
	PaymentStatus   PaymentStatus `db:"payment_status" json:"payment_status"`
	Type            Type          `db:"booking_type" json:"booking_type"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
}

type BookingWithClass struct {
	Booking
	ClassName      string `db:"class_name" json:"class_name"`
	InstructorName string `db:"instructor_name" json:"instructor_name"`
}

// RejectReason classifies why a booking request was refused. Rejections are
// results, not errors; errors are reserved for infrastructure failures.
type RejectReason string

const (
	ReasonClassStarted       RejectReason = "CLASS_STARTED"
	ReasonClassFull          RejectReason = "CLASS_FULL"
	ReasonMemberPlusRequired RejectReason = "MEMBER_PLUS_REQUIRED"
	ReasonAlreadyBooked      RejectReason = "ALREADY_BOOKED"
	ReasonNoPackCredits      RejectReason = "NO_PACK_CREDITS"
)

type Rejection struct {
	Reason     RejectReason `json:"reason"`
	Message    string       `json:"message"`
	Suggestion string       `json:"suggestion,omitempty"`
}

type DayStat struct {
	Day          time.Time `db:"day" json:"day"`
	Count        int       `db:"count" json:"count"`
	RevenueCents int64     `db:"revenue_cents" json:"revenue_cents"`
}

type ClassStat struct {
	ClassID   int    `db:"class_id" json:"class_id"`
	ClassName string `db:"class_name" json:"class_name"`
	Count     int    `db:"count" json:"count"`
}
