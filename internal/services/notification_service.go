package services

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"tyremart/internal/config"
)

// NotificationService is the outbound delivery collaborator: email for OTP
// codes, SMS kept for parity with the shop-front flows.
type NotificationService interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	SendSMS(ctx context.Context, to, body string) error
}

type notificationService struct {
	mail config.MailConfig
}

func NewNotificationService(mail config.MailConfig) NotificationService {
	return &notificationService{mail: mail}
}

func (s *notificationService) SendEmail(ctx context.Context, to, subject, body string) error {
	if s.mail.Host == "" {
		// No SMTP configured: log for local diagnostics instead of sending.
		log.Printf("[EMAIL] To=%s, Subject=%s, Body=%s", to, subject, body)
		return nil
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", s.mail.From, to, subject, body))
	addr := fmt.Sprintf("%s:%d", s.mail.Host, s.mail.Port)

	var auth smtp.Auth
	if s.mail.Username != "" {
		auth = smtp.PlainAuth("", s.mail.Username, s.mail.Password, s.mail.Host)
	}

	if err := smtp.SendMail(addr, auth, s.mail.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return nil
}

func (s *notificationService) SendSMS(ctx context.Context, to, body string) error {
	// No SMS gateway integration; log the message that would be sent.
	log.Printf("[SMS] To=%s, Message=%s", to, body)
	return nil
}
