package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"kalavpp_backend/internal/config"
	"kalavpp_backend/internal/logger"
)

// Sender delivers transactional marketplace mail.
type Sender interface {
	SendOrderConfirmation(to, orderNumber string, total float64) error
	SendVendorDecision(to, storeName string, approved bool) error
	SendCommissionUpdate(to, title, status string) error
}

// NewSender returns an SMTP sender, or a no-op one when SMTP is not
// configured (development and test environments).
func NewSender(cfg *config.Config) Sender {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP not configured, email delivery disabled")
		return &noopSender{}
	}
	return &smtpSender{cfg: cfg}
}

type smtpSender struct {
	cfg *config.Config
}

func (s *smtpSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Email.FromEmail, s.cfg.Email.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		s.cfg.Email.SMTPHost,
		s.cfg.Email.SMTPPort,
		s.cfg.Email.SMTPUsername,
		s.cfg.Email.SMTPPassword,
	)
	return d.DialAndSend(m)
}

func (s *smtpSender) SendOrderConfirmation(to, orderNumber string, total float64) error {
	subject := fmt.Sprintf("Kalavpp order %s confirmed", orderNumber)
	body := fmt.Sprintf(
		"<p>Thank you for your order!</p><p>Order <b>%s</b> for a total of <b>%.2f</b> has been received and is awaiting payment.</p>",
		orderNumber, total,
	)
	return s.send(to, subject, body)
}

func (s *smtpSender) SendVendorDecision(to, storeName string, approved bool) error {
	if approved {
		return s.send(to, "Your Kalavpp store is live",
			fmt.Sprintf("<p>Congratulations! Your store <b>%s</b> has been approved. Your listings are now discoverable.</p>", storeName))
	}
	return s.send(to, "Your Kalavpp store application",
		fmt.Sprintf("<p>Unfortunately your store <b>%s</b> was not approved at this time.</p>", storeName))
}

func (s *smtpSender) SendCommissionUpdate(to, title, status string) error {
	subject := fmt.Sprintf("Commission update: %s", title)
	body := fmt.Sprintf("<p>Your commission <b>%s</b> moved to status <b>%s</b>.</p>", title, status)
	return s.send(to, subject, body)
}

type noopSender struct{}

func (n *noopSender) SendOrderConfirmation(to, orderNumber string, total float64) error {
	logger.Debug("email skipped (noop)", "to", to, "order", orderNumber)
	return nil
}

func (n *noopSender) SendVendorDecision(to, storeName string, approved bool) error {
	logger.Debug("email skipped (noop)", "to", to, "store", storeName)
	return nil
}

func (n *noopSender) SendCommissionUpdate(to, title, status string) error {
	logger.Debug("email skipped (noop)", "to", to, "commission", title)
	return nil
}
