package membership

import "time"

type Type string
type Status string

const (
	TypeNone       Type = "none"
	TypeDropIn     Type = "drop_in"
	TypeUnlimited  Type = "unlimited"
	TypeClassPack  Type = "class_pack"
	TypeMemberPlus Type = "member_plus"

	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// Membership is owned by the billing side; the scheduling core reads it to
// price bookings and gate member-plus classes.
type Membership struct {
	ID             int       `db:"id" json:"id"`
	UserID         int       `db:"user_id" json:"user_id"`
	Type           Type      `db:"type" json:"type"`
	Status         Status    `db:"status" json:"status"`
	ClassesUsed    int       `db:"classes_used" json:"classes_used"`
	ClassesAllowed *int      `db:"classes_allowed" json:"classes_allowed,omitempty"`
	ValidFrom      time.Time `db:"valid_from" json:"valid_from"`
	ValidUntil     time.Time `db:"valid_until" json:"valid_until"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Covered reports whether the membership itself pays for a class, meaning no
// drop-in charge applies at booking time.
func (m *Membership) Covered() bool {
	switch m.Type {
	case TypeUnlimited, TypeMemberPlus, TypeClassPack:
		return true
	}
	return false
}

type CreateMembershipRequest struct {
	UserID     int    `json:"user_id" binding:"required"`
	Type       string `json:"type" binding:"required"`
	ValidUntil string `json:"valid_until" binding:"required"`
}
