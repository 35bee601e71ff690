// Package mailer delivers the daily summary by email through SMTP or SendGrid.
package mailer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/shiftreport/internal/config"
)

// Attachment is a file carried by a Message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a plain-text email with optional attachments.
type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Transport sends a message and returns the provider's message id.
type Transport interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// New builds the transport selected by cfg. It returns nil, nil when mail is
// not configured so callers can fall back to saving the workbook locally.
func New(cfg config.MailConfig, logger *zap.Logger) (Transport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Transport() {
	case "":
		logger.Info("mail transport not configured")
		return nil, nil
	case config.MailSMTP:
		logger.Info("using smtp mail transport", zap.String("host", cfg.SMTPHost), zap.Int("port", cfg.SMTPPort))
		return NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.Sender()), nil
	case config.MailSendGrid:
		logger.Info("using sendgrid mail transport")
		return NewSendGridProvider(cfg.SendGridAPIKey, cfg.Sender(), "Shift Reports"), nil
	default:
		return nil, fmt.Errorf("unsupported mail provider %q", cfg.Provider)
	}
}
