package notifications

import (
	"context"

	"gopkg.in/gomail.v2"
)

// SMTPSender delivers the same notifications through a plain SMTP relay.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	MailFrom string

	dial func(m ...*gomail.Message) error
}

func (s *SMTPSender) from() string {
	if s.MailFrom != "" {
		return s.MailFrom
	}
	return defaultFrom
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, html string) error {
	if toEmail == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from(), "VibeMarket")
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	if s.dial != nil {
		return s.dial(m)
	}
	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	return d.DialAndSend(m)
}

func (s *SMTPSender) SendVibeApproved(ctx context.Context, toEmail, creatorName, title, vibeURL string) error {
	return s.send(ctx, toEmail, subjectApproved, Layout(approvedContent(creatorName, title, vibeURL)))
}

func (s *SMTPSender) SendVibeRejected(ctx context.Context, toEmail, creatorName, title string) error {
	return s.send(ctx, toEmail, subjectRejected, Layout(rejectedContent(creatorName, title)))
}
