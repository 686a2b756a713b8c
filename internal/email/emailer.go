package email

import (
	"fmt"
	"net/smtp"

	"coursemarket-app/config"
)

// Sender delivers one message. Callers treat failures as best effort and log
// them; nothing in the purchase flow depends on delivery succeeding.
type Sender interface {
	Send(subject, recipient, html string) error
}

type SMTPSender struct{}

func NewSMTPSender() *SMTPSender {
	return &SMTPSender{}
}

func (s *SMTPSender) Send(subject, recipient, html string) error {
	from := config.SMTP_FROM
	auth := smtp.PlainAuth("", from, config.SMTP_PASSWORD, config.SMTP_HOST)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + recipient + "\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		html + "\r\n")

	err := smtp.SendMail(config.SMTP_HOST+":"+config.SMTP_PORT, auth, from, []string{recipient}, message)
	if err != nil {
		fmt.Println("❌ SMTP error:", err)
	}
	return err
}
