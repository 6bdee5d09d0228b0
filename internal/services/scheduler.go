package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/yalex-kim/timing-trainer/internal/repository"
)

// Scheduler nudges users who opted into training reminders. Reminder
// times are stored in UTC, so one minute-resolution sweep covers every
// timezone.
type Scheduler struct {
	log          *zap.Logger
	emailService *EmailService
	done         chan struct{}
}

func NewScheduler(log *zap.Logger, emailService *EmailService) *Scheduler {
	return &Scheduler{
		log:          log,
		emailService: emailService,
		done:         make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine.
func (s *Scheduler) Start() {
	s.log.Info("Starting training reminder scheduler")
	go s.loop()
}

// Stop ends the sweep loop. Reminders already in flight still finish.
func (s *Scheduler) Stop() {
	close(s.done)
}

func (s *Scheduler) loop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(time.Now().UTC())
		case <-s.done:
			s.log.Info("Reminder scheduler stopped")
			return
		}
	}
}

// sweep finds users whose reminder time matches the current UTC minute
// and mails everyone who has not trained yet today.
func (s *Scheduler) sweep(now time.Time) {
	minute := now.Format("15:04")

	users, err := repository.GetUsersForEmailReminder(minute)
	if err != nil {
		s.log.Error("Reminder sweep query failed", zap.Error(err))
		return
	}
	if len(users) == 0 {
		return
	}
	s.log.Debug("Reminder sweep", zap.String("utc_minute", minute), zap.Int("candidates", len(users)))

	for _, user := range users {
		trained, err := repository.HasTrainedToday(user.ID)
		if err != nil {
			s.log.Error("Failed to check today's training", zap.Uint("userID", user.ID), zap.Error(err))
			continue
		}
		if trained {
			continue
		}
		go s.emailService.SendReminderEmail(user)
	}
}
