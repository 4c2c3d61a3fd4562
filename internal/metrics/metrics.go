package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thryve_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thryve_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thryve_bookings_total",
			Help: "Total number of confirmed bookings",
		},
		[]string{"booking_type"},
	)

	BookingRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thryve_booking_rejections_total",
			Help: "Total number of rejected booking attempts",
		},
		[]string{"reason"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "thryve_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	WaitlistEnrollmentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "thryve_waitlist_enrollments_total",
			Help: "Total number of waitlist enrollments",
		},
	)

	WaitlistPromotionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thryve_waitlist_promotions_total",
			Help: "Total number of waitlist promotions",
		},
		[]string{"auto_book"},
	)

	InstancesGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "thryve_class_instances_generated_total",
			Help: "Total number of class instances created by template expansion",
		},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thryve_notifications_sent_total",
			Help: "Total number of notifications sent",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "thryve_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(bookingType string) {
	BookingsTotal.WithLabelValues(bookingType).Inc()
}

func RecordBookingRejection(reason string) {
	BookingRejectionsTotal.WithLabelValues(reason).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordWaitlistEnrollment() {
	WaitlistEnrollmentsTotal.Inc()
}

func RecordWaitlistPromotion(autoBook bool) {
	label := "false"
	if autoBook {
		label = "true"
	}
	WaitlistPromotionsTotal.WithLabelValues(label).Inc()
}

func RecordInstancesGenerated(count int) {
	InstancesGeneratedTotal.Add(float64(count))
}

func RecordNotification(notificationType, status string) {
	NotificationsSentTotal.WithLabelValues(notificationType, status).Inc()
}
