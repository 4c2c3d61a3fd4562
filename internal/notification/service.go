package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"thryve/internal/logger"
	"thryve/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey  = "notifications"
	failedKey = "notifications:failed"
)

type Job struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) Send(ctx context.Context, notificationType, to, name, subject, body string) error {
	job := Job{
		Type:    notificationType,
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Tries:   0,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal notification job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue notification to %s: %v", to, err)
		return err
	}

	logger.Infof("Notification queued: %s to %s", subject, to)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Notification service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	metrics.NotificationQueueLength.Set(float64(s.QueueLength(ctx)))

	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad notification data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Sending notification to %s (attempt %d)", job.To, job.Tries)
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send notification to %s: %v", job.To, err)

		if job.Tries < 3 {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying notification to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			logger.Errorf("Notification to %s failed after 3 attempts", job.To)
			metrics.RecordNotification(job.Type, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordNotification(job.Type, "sent")
	logger.Infof("Notification sent successfully to %s", job.To)
}

func (s *Service) sendNow(job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedKey, data)
	logger.Errorf("Notification moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func (s *Service) SendBookingConfirmation(ctx context.Context, email, name, className string, startTime time.Time) error {
	subject := "Booking Confirmed - " + className
	body := fmt.Sprintf(`Hi %s,

Your spot is confirmed!

Class: %s
Time: %s

See you in the studio!

- Thryve Team`, name, className, startTime.Format("Jan 2, 2006 at 3:04 PM"))

	return s.Send(ctx, "booking_confirmation", email, name, subject, body)
}

func (s *Service) SendBookingCancellation(ctx context.Context, email, name, className string) error {
	subject := "Booking Cancelled - " + className
	body := fmt.Sprintf(`Hi %s,

Your booking has been cancelled:

Class: %s

Hope to see you again soon.

- Thryve Team`, name, className)

	return s.Send(ctx, "booking_cancellation", email, name, subject, body)
}

func (s *Service) SendWaitlistEnrollment(ctx context.Context, email, name, className string, position int) error {
	subject := "You're on the Waitlist - " + className
	body := fmt.Sprintf(`Hi %s,

You've been added to the waitlist:

Class: %s
Position: %d

We'll let you know as soon as a spot opens up.

- Thryve Team`, name, className, position)

	return s.Send(ctx, "waitlist_enrollment", email, name, subject, body)
}

func (s *Service) SendWaitlistPromotion(ctx context.Context, email, name, className string, expiresAt *time.Time) error {
	subject := "A Spot Opened Up - " + className
	deadline := "soon"
	if expiresAt != nil {
		deadline = expiresAt.Format("Jan 2, 2006 at 3:04 PM")
	}
	body := fmt.Sprintf(`Hi %s,

Good news! A spot opened up in %s.

Confirm your booking before %s or your spot will be offered to the next person in line.

- Thryve Team`, name, className, deadline)

	return s.Send(ctx, "waitlist_promotion", email, name, subject, body)
}

func (s *Service) SendClassCancellation(ctx context.Context, email, name, className string, startTime time.Time) error {
	subject := "Class Cancelled - " + className
	body := fmt.Sprintf(`Hi %s,

Unfortunately the following class has been cancelled:

Class: %s
Time: %s

Any pack credits used for this class have been refunded.

- Thryve Team`, name, className, startTime.Format("Jan 2, 2006 at 3:04 PM"))

	return s.Send(ctx, "class_cancellation", email, name, subject, body)
}
