// Package mailer sends the transactional emails of the shop: one-time codes and new
// product announcements.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"kickstreet/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var ErrSendFailed = errors.New("email delivery failed")

type Purpose string

const (
	PurposeVerify Purpose = "verify"
	PurposeReset  Purpose = "reset"
)

type OTPMessage struct {
	To        string
	Name      string
	Code      string
	Purpose   Purpose
	ExpiresIn time.Duration
}

type Announcement struct {
	ProductName string
	Price       string
	Image       string
	URL         string
}

// Sender is implemented by SMTPMailer and LogMailer.
type Sender interface {
	SendOTP(ctx context.Context, msg OTPMessage) error
	SendAnnouncement(ctx context.Context, recipients []string, a Announcement) error
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	dialer dialer
	from   string
	log    *zap.Logger
}

func NewSMTPMailer(cfg utils.EmailConfig, log *zap.Logger) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
		log:    log.With(zap.String("component", "mailer")),
	}
}

// New picks the SMTP mailer when a host is configured and the logging mailer otherwise.
// OTP codes reach the log only in debug mode.
func New(cfg utils.EmailConfig, debug bool, log *zap.Logger) Sender {
	if cfg.Host == "" {
		log.Warn("SMTP_HOST not set, emails are written to the log", zap.Bool("otp_codes_logged", debug))
		return NewLogMailer(log, debug)
	}
	return NewSMTPMailer(cfg, log)
}

func (m *SMTPMailer) SendOTP(ctx context.Context, msg OTPMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, body, err := renderOTP(msg)
	if err != nil {
		return err
	}

	mail := gomail.NewMessage()
	mail.SetAddressHeader("From", m.from, "KickStreet Support")
	mail.SetHeader("To", msg.To)
	mail.SetHeader("Subject", subject)
	mail.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(mail); err != nil {
		m.log.Error("Failed to send OTP email",
			zap.Error(err),
			zap.String("to", msg.To),
			zap.String("purpose", string(msg.Purpose)),
		)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	m.log.Info("OTP email sent", zap.String("to", msg.To), zap.String("purpose", string(msg.Purpose)))
	return nil
}

// SendAnnouncement mails each recipient separately so addresses are not disclosed to
// each other. It returns the first delivery error after trying everyone.
func (m *SMTPMailer) SendAnnouncement(ctx context.Context, recipients []string, a Announcement) error {
	if len(recipients) == 0 {
		return nil
	}

	body, err := render(announcementTmpl, a)
	if err != nil {
		return err
	}

	var firstErr error
	sent := 0
	for _, to := range recipients {
		if err := ctx.Err(); err != nil {
			return err
		}

		mail := gomail.NewMessage()
		mail.SetAddressHeader("From", m.from, "KickStreet")
		mail.SetHeader("To", to)
		mail.SetHeader("Subject", "New drop: "+a.ProductName)
		mail.SetBody("text/html", body)

		if err := m.dialer.DialAndSend(mail); err != nil {
			m.log.Warn("Failed to send announcement", zap.Error(err), zap.String("to", to))
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: %v", ErrSendFailed, err)
			}
			continue
		}
		sent++
	}

	m.log.Info("Announcement sent",
		zap.String("product", a.ProductName),
		zap.Int("sent", sent),
		zap.Int("recipients", len(recipients)),
	)
	return firstErr
}

// LogMailer writes emails to the log. Used for local development.
type LogMailer struct {
	log       *zap.Logger
	showCodes bool
}

// NewLogMailer logs OTP codes only when showCodes is set.
func NewLogMailer(log *zap.Logger, showCodes bool) *LogMailer {
	return &LogMailer{log: log.With(zap.String("component", "mailer")), showCodes: showCodes}
}

func (m *LogMailer) SendOTP(_ context.Context, msg OTPMessage) error {
	fields := []zap.Field{
		zap.String("to", msg.To),
		zap.String("purpose", string(msg.Purpose)),
		zap.Duration("expires_in", msg.ExpiresIn),
	}
	if m.showCodes {
		fields = append(fields, zap.String("otp_code", msg.Code))
	}
	m.log.Info("OTP email (not sent)", fields...)
	return nil
}

func (m *LogMailer) SendAnnouncement(_ context.Context, recipients []string, a Announcement) error {
	m.log.Info("Announcement email (not sent)",
		zap.String("product", a.ProductName),
		zap.Int("recipients", len(recipients)),
	)
	return nil
}

func renderOTP(msg OTPMessage) (subject, body string, err error) {
	data := otpData{
		Name:    msg.Name,
		Code:    msg.Code,
		Minutes: int(msg.ExpiresIn.Round(time.Minute) / time.Minute),
		Year:    time.Now().Year(),
	}

	switch msg.Purpose {
	case PurposeReset:
		subject = "KickStreet - Password Reset OTP"
		data.Heading = "Password Reset Request"
		data.Intro = "Your OTP for password reset is:"
		data.Footer = "If you didn't request a password reset, please ignore this email or change your password immediately."
	default:
		subject = "KickStreet - Your OTP for Verification"
		data.Heading = "Welcome to KickStreet!"
		data.Intro = "Your OTP for account verification is:"
		data.Footer = "If you didn't request this OTP, please ignore this email."
	}

	body, err = render(otpTmpl, data)
	return subject, body, err
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
