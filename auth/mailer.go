package auth

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/goliatone/go-errors"
)

// Mailer dispatches transactional email. The reset flow only needs the
// OTP message; anything richer belongs to a dedicated service.
type Mailer interface {
	SendOTPEmail(ctx context.Context, to, code string) error
}

const otpEmailSubject = "Password Reset OTP"

const otpEmailTemplate = `<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2 style="color: #333;">Password Reset Request</h2>
	<p>You requested to reset your password. Use the following OTP code:</p>
	<div style="background-color: #f4f4f4; padding: 20px; text-align: center; margin: 20px 0;">
		<span style="font-size: 32px; font-weight: bold; letter-spacing: 8px; color: #2c3e50;">%s</span>
	</div>
	<p>This code will expire in <strong>5 minutes</strong>.</p>
	<p style="color: #888;">If you did not request a password reset, please ignore this email.</p>
</body>
</html>`

// SMTPConfig holds the dispatcher connection settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// UseTLS dials an implicit TLS connection (port 465 style) instead
	// of plain SMTP with AUTH.
	UseTLS bool
}

// SMTPMailer sends OTP email over SMTP
type SMTPMailer struct {
	cfg    SMTPConfig
	logger Logger
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer returns a new SMTPMailer
func NewSMTPMailer(cfg SMTPConfig, logger Logger) *SMTPMailer {
	if logger == nil {
		logger = defLogger{}
	}
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// SendOTPEmail renders the OTP template and dispatches it to the
// recipient. Errors are wrapped so the flow can map them to a delivery
// failure rather than leaking SMTP details.
func (m *SMTPMailer) SendOTPEmail(ctx context.Context, to, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := fmt.Sprintf(otpEmailTemplate, code)
	msg := m.buildMessage(to, otpEmailSubject, body)

	var err error
	if m.cfg.UseTLS {
		err = m.sendTLS(to, msg)
	} else {
		addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		err = smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg)
	}

	if err != nil {
		m.logger.Error("smtp dispatch failed", "to", to, "error", err)
		return errors.Wrap(err, errors.CategoryInternal, "failed to send email").
			WithTextCode(TextCodeDeliveryFailure)
	}

	m.logger.Info("otp email sent", "to", to)
	return nil
}

func (m *SMTPMailer) buildMessage(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n",
		m.cfg.From, to, subject,
	)
	return []byte(headers + htmlBody)
}

func (m *SMTPMailer) sendTLS(to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
