package waitlist

import (
	"time"

	"thryve/internal/booking"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusPromoted  Status = "promoted"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// Entry is a pending request for a seat in a full class instance.
//
// Position is assigned at enrollment and never renumbered when earlier
// entries cancel, so it is display data only; promotion order is always
// created_at ascending.
type Entry struct {
	ID                 string     `db:"id" json:"id"`
	ClassInstanceID    string     `db:"class_instance_id" json:"class_instance_id"`
	UserID             int        `db:"user_id" json:"user_id"`
	Position           int        `db:"position" json:"position"`
	Status             Status     `db:"status" json:"status"`
	AutoBook           bool       `db:"auto_book" json:"auto_book"`
	NotifyEmail        bool       `db:"notify_email" json:"notify_email"`
	NotifySMS          bool       `db:"notify_sms" json:"notify_sms"`
	PromotionExpiresAt *time.Time `db:"promotion_expires_at" json:"promotion_expires_at,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}

type JoinRequest struct {
	AutoBook    bool `json:"auto_book"`
	NotifyEmail bool `json:"notify_email"`
	NotifySMS   bool `json:"notify_sms"`
}

// Promotion is the outcome for one promoted entry. Booking is set only when
// the entry had auto_book; otherwise the user must confirm within the
// configured window.
type Promotion struct {
	Entry   Entry            `json:"entry"`
	Booking *booking.Booking `json:"booking,omitempty"`
}
