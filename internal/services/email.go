package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yalex-kim/timing-trainer/internal/models"
)

// EmailService is a placeholder for a real email sending service.
type EmailService struct {
	log *zap.Logger
}

func NewEmailService(log *zap.Logger) *EmailService {
	return &EmailService{log: log}
}

// SendReminderEmail simulates sending a reminder email.
func (s *EmailService) SendReminderEmail(user models.User) {
	s.log.Info("Sending reminder email",
		zap.String("to", user.Email),
		zap.String("name", user.FirstName),
	)
	// In a real application, you would use an SMTP client like go-mail
	// to send a templated HTML email here.
	fmt.Printf("--- SIMULATING EMAIL ---\nTo: %s\nSubject: Time for your timing practice\nHi %s,\nThis is a friendly reminder to complete today's metronome training session.\n\n", user.Email, user.FirstName)
}
