package mailer

import (
	"fmt"
	"html"
	"time"

	"gopkg.in/gomail.v2"
)

// Escalation describes an exchange the bot could not answer
type Escalation struct {
	UserId      string
	UserMessage string
	BotResponse string
	Branch      string
	Timestamp   time.Time
}

type IEmailService interface {
	SendEscalation(toEmail string, e Escalation) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
	}
}

// EscalationBody renders the HTML body; user text is escaped
func EscalationBody(e Escalation) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>未対応の問い合わせがあります</h2>
			<p><strong>User:</strong> %s</p>
			<p><strong>Received:</strong> %s</p>
			<p><strong>Message:</strong></p>
			<blockquote>%s</blockquote>
			<p><strong>Bot reply (%s):</strong></p>
			<blockquote>%s</blockquote>
		</div>
	`,
		html.EscapeString(e.UserId),
		e.Timestamp.Format(time.RFC3339),
		html.EscapeString(e.UserMessage),
		html.EscapeString(e.Branch),
		html.EscapeString(e.BotResponse),
	)
}

func (s *emailService) SendEscalation(toEmail string, e Escalation) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[FAQ Bot] Follow-up needed for %s", e.UserId))
	m.SetBody("text/html", EscalationBody(e))

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send escalation to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Escalation for %s sent to %s\n", e.UserId, toEmail)
	return nil
}
