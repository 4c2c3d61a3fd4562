package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/classes", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/classes", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/auth/login", "200", 0.1)
	RecordHTTPRequest("POST", "/auth/login", "200", 0.2)
	RecordHTTPRequest("POST", "/auth/login", "401", 0.05)

	successCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "200"))
	failCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "401"))

	assert.Equal(t, float64(2), successCount)
	assert.Equal(t, float64(1), failCount)
}

func TestRecordBooking(t *testing.T) {
	BookingsTotal.Reset()

	RecordBooking("drop_in")
	RecordBooking("drop_in")
	RecordBooking("waitlist_promotion")

	dropIn := testutil.ToFloat64(BookingsTotal.WithLabelValues("drop_in"))
	promoted := testutil.ToFloat64(BookingsTotal.WithLabelValues("waitlist_promotion"))

	assert.Equal(t, float64(2), dropIn)
	assert.Equal(t, float64(1), promoted)
}

func TestRecordBookingRejection(t *testing.T) {
	BookingRejectionsTotal.Reset()

	RecordBookingRejection("CLASS_FULL")
	RecordBookingRejection("CLASS_FULL")
	RecordBookingRejection("ALREADY_BOOKED")

	full := testutil.ToFloat64(BookingRejectionsTotal.WithLabelValues("CLASS_FULL"))
	dup := testutil.ToFloat64(BookingRejectionsTotal.WithLabelValues("ALREADY_BOOKED"))

	assert.Equal(t, float64(2), full)
	assert.Equal(t, float64(1), dup)
}

func TestRecordBookingCancellation(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "thryve_booking_cancellations_total_test",
			Help: "Total number of booking cancellations",
		},
	)

	oldCounter := BookingCancellationsTotal
	BookingCancellationsTotal = testCounter
	defer func() { BookingCancellationsTotal = oldCounter }()

	RecordBookingCancellation()
	RecordBookingCancellation()

	count := testutil.ToFloat64(testCounter)
	assert.Equal(t, float64(2), count)
}

func TestRecordWaitlistPromotion(t *testing.T) {
	WaitlistPromotionsTotal.Reset()

	RecordWaitlistPromotion(true)
	RecordWaitlistPromotion(false)
	RecordWaitlistPromotion(false)

	autoBooked := testutil.ToFloat64(WaitlistPromotionsTotal.WithLabelValues("true"))
	pending := testutil.ToFloat64(WaitlistPromotionsTotal.WithLabelValues("false"))

	assert.Equal(t, float64(1), autoBooked)
	assert.Equal(t, float64(2), pending)
}

func TestRecordWaitlistEnrollment(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "thryve_waitlist_enrollments_total_test",
			Help: "Total number of waitlist enrollments",
		},
	)

	oldCounter := WaitlistEnrollmentsTotal
	WaitlistEnrollmentsTotal = testCounter
	defer func() { WaitlistEnrollmentsTotal = oldCounter }()

	RecordWaitlistEnrollment()

	count := testutil.ToFloat64(testCounter)
	assert.Equal(t, float64(1), count)
}

func TestRecordInstancesGenerated(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "thryve_class_instances_generated_total_test",
			Help: "Total number of class instances created by template expansion",
		},
	)

	oldCounter := InstancesGeneratedTotal
	InstancesGeneratedTotal = testCounter
	defer func() { InstancesGeneratedTotal = oldCounter }()

	RecordInstancesGenerated(12)
	RecordInstancesGenerated(3)

	count := testutil.ToFloat64(testCounter)
	assert.Equal(t, float64(15), count)
}

func TestRecordNotification(t *testing.T) {
	NotificationsSentTotal.Reset()

	RecordNotification("booking_confirmation", "sent")
	RecordNotification("booking_confirmation", "failed")
	RecordNotification("waitlist_promotion", "sent")

	confirmSent := testutil.ToFloat64(NotificationsSentTotal.WithLabelValues("booking_confirmation", "sent"))
	confirmFailed := testutil.ToFloat64(NotificationsSentTotal.WithLabelValues("booking_confirmation", "failed"))
	promotionSent := testutil.ToFloat64(NotificationsSentTotal.WithLabelValues("waitlist_promotion", "sent"))

	assert.Equal(t, float64(1), confirmSent)
	assert.Equal(t, float64(1), confirmFailed)
	assert.Equal(t, float64(1), promotionSent)
}

func TestNotificationQueueLength(t *testing.T) {
	NotificationQueueLength.Set(10)
	assert.Equal(t, float64(10), testutil.ToFloat64(NotificationQueueLength))

	NotificationQueueLength.Set(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(NotificationQueueLength))
}

func TestMetricsIntegration(t *testing.T) {
	HTTPRequestsTotal.Reset()
	BookingsTotal.Reset()
	NotificationsSentTotal.Reset()

	RecordHTTPRequest("POST", "/classes/:instanceID/book", "201", 0.25)
	RecordBooking("class_pack")
	RecordNotification("booking_confirmation", "sent")

	httpCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/classes/:instanceID/book", "201"))
	bookingCount := testutil.ToFloat64(BookingsTotal.WithLabelValues("class_pack"))
	notificationCount := testutil.ToFloat64(NotificationsSentTotal.WithLabelValues("booking_confirmation", "sent"))

	assert.Equal(t, float64(1), httpCount)
	assert.Equal(t, float64(1), bookingCount)
	assert.Equal(t, float64(1), notificationCount)
}
