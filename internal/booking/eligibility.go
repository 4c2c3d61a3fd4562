package booking

import (
	"time"

	"thryve/internal/class"
	"thryve/internal/membership"
)

// CheckEligibility runs the ordered admission checks for one booking request
// and returns nil when all pass. The first failing check wins. The result is
// advisory; the authoritative capacity check happens again inside the insert
// transaction.
func CheckEligibility(inst *class.InstanceWithAvailability, m *membership.Membership, now time.Time) *Rejection {
	if !inst.StartTime.After(now) {
		return &Rejection{
			Reason:  ReasonClassStarted,
			Message: "this class has already started",
		}
	}

	if inst.AvailableSpots <= 0 {
		return &Rejection{
			Reason:     ReasonClassFull,
			Message:    "this class is full",
			Suggestion: "waitlist",
		}
	}

	if inst.MemberPlusOnly && m.Type != membership.TypeMemberPlus {
		return &Rejection{
			Reason:  ReasonMemberPlusRequired,
			Message: "this class is reserved for Member+ subscribers",
		}
	}

	return nil
}

// PriceFor computes what the booking costs at booking time. Covered
// membership tiers and class packs pay nothing here; class-pack usage is
// settled against the credit balance instead.
func PriceFor(mt membership.Type, instancePriceCents int64) int64 {
	switch mt {
	case membership.TypeUnlimited, membership.TypeMemberPlus, membership.TypeClassPack:
		return 0
	}
	return instancePriceCents
}

// TypeFor maps the membership tier to the booking classification.
func TypeFor(mt membership.Type) Type {
	switch mt {
	case membership.TypeUnlimited:
		return TypeUnlimitedMembership
	case membership.TypeMemberPlus:
		return TypeMemberPlus
	case membership.TypeClassPack:
		return TypeClassPack
	}
	return TypeDropIn
}
