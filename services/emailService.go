package services

import (
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
)

// EmailService delivers password-reset codes for local teacher accounts.
type EmailService struct {
	client *resend.Client
}

var emailService *EmailService

func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")

	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email service will not be available.")
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
	}

	log.Println("Email service initialized with Resend")
}

func GetEmailService() *EmailService {
	return emailService
}

// SendPasswordResetEmail sends the 6-digit reset code. The code expires 15
// minutes after issue.
func (s *EmailService) SendPasswordResetEmail(toEmail string, code string, displayName string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	htmlBody := fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Classroom Prayers password reset</h2>
  <p>Hi %s,</p>
  <p>Your password reset code is:</p>
  <p style="font-size: 32px; letter-spacing: 8px; font-weight: bold;">%s</p>
  <p>The code expires in 15 minutes. If you didn't ask for a reset, you can
  ignore this email.</p>
</div>`, displayName, code)

	params := &resend.SendEmailRequest{
		From:    "Classroom Prayers <noreply@classroomprayers.app>",
		To:      []string{toEmail},
		Subject: "Your password reset code",
		Html:    htmlBody,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}
