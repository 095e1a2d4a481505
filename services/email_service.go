package services

import (
	"context"
	"fmt"
	"os"

	"studyhub-backend/models"
	"studyhub-backend/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	baseURL   string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "StudyHub"
	}
	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	return &EmailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		baseURL:   baseURL,
	}
}

// SendExamReminder emails the exam owner about an upcoming exam. The subject
// carries the exam title, the body its date and optional description.
func (s *EmailService) SendExamReminder(ctx context.Context, toEmail, toName string, exam models.Exam) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	subject := fmt.Sprintf("Reminder: %s", exam.Title)
	date := utils.FormatDate(exam.DueDate)

	plainContent := fmt.Sprintf("Hello %s, this is a reminder about your exam '%s' on %s.",
		toName, exam.Title, date)
	if exam.Description != "" {
		plainContent += " Notes: " + exam.Description
	}

	description := ""
	if exam.Description != "" {
		description = fmt.Sprintf("<p><strong>Notes:</strong> %s</p>", exam.Description)
	}
	htmlContent := fmt.Sprintf(
		"<p>Hello %s,</p><p>This is a reminder about your exam:</p>"+
			"<p><strong>%s</strong><br>Date: %s</p>%s"+
			"<p>Good luck with your studies!</p>"+
			"<p style=\"font-size:12px;color:#6b7280;\">Automatic reminder from StudyHub. Manage your reminders at <a href=\"%s\">%s</a>.</p>",
		toName, exam.Title, date, description, s.baseURL, s.baseURL)

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)
	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email to %s: %d", toEmail, response.StatusCode)
	}
	return nil
}
