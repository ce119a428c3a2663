package contact

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"github.com/Zachkp/portfolio/internal/domain"
)

// MailConfig holds the SMTP settings for message notifications.
type MailConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// Enabled reports whether credentials are present.
func (c MailConfig) Enabled() bool {
	return c.User != "" && c.Pass != ""
}

// MailNotifier emails the site owner about each stored message.
type MailNotifier struct {
	cfg  MailConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailNotifier returns a notifier using cfg, or nil when cfg has no
// credentials.
func NewMailNotifier(cfg MailConfig) *MailNotifier {
	if !cfg.Enabled() {
		return nil
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.To == "" {
		cfg.To = cfg.User
	}
	return &MailNotifier{cfg: cfg, send: smtp.SendMail}
}

func (n *MailNotifier) Notify(_ context.Context, m domain.Message) error {
	subject := fmt.Sprintf("Portfolio Contact: %s", m.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, m.Name, m.Email, m.Message)

	msg := []byte("To: " + n.cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + n.cfg.User + "\r\n" +
		"Reply-To: " + m.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Pass, n.cfg.Host)

	if err := n.send(n.cfg.Host+":"+n.cfg.Port, auth, n.cfg.User, []string{n.cfg.To}, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	log.Printf("Contact notification sent for %s (%s)", m.Name, m.Email)
	return nil
}
