package mailer

import (
	"fmt"
	"html"

	"buddyai-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail, username string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	logger      logger.ILogger
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string, log logger.ILogger) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
		logger:      log,
	}
}

func (s *emailService) buildWelcome(toEmail, username string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Welcome to %s", s.senderName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s, welcome aboard!</h2>
			<p>Your account is ready. Start a new chat any time.</p>
		</div>
	`, html.EscapeString(username))
	m.SetBody("text/html", body)
	return m
}

func (s *emailService) SendWelcome(toEmail, username string) error {
	if err := s.dialer.DialAndSend(s.buildWelcome(toEmail, username)); err != nil {
		s.logger.Error("MAILER", "Failed to send welcome email", map[string]interface{}{
			"to":    toEmail,
			"error": err.Error(),
		})
		return err
	}

	s.logger.Info("MAILER", "Welcome email sent", map[string]interface{}{"to": toEmail})
	return nil
}
