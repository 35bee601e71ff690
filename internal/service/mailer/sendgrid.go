package mailer

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridProvider sends mail through the SendGrid v3 API.
type SendGridProvider struct {
	fromEmail string
	fromName  string
	client    *sendgrid.Client
}

// NewSendGridProvider creates a new SendGrid provider.
func NewSendGridProvider(apiKey, fromEmail, fromName string) *SendGridProvider {
	return &SendGridProvider{
		fromEmail: fromEmail,
		fromName:  fromName,
		client:    sendgrid.NewSendClient(apiKey),
	}
}

// Send delivers msg and returns the X-Message-Id assigned by SendGrid.
func (p *SendGridProvider) Send(ctx context.Context, msg Message) (string, error) {
	response, err := p.client.SendWithContext(ctx, p.buildMail(msg))
	if err != nil {
		return "", fmt.Errorf("sendgrid error: %w", err)
	}

	if response.StatusCode >= 300 {
		return "", fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	var messageID string
	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		messageID = ids[0]
	}
	return messageID, nil
}

func (p *SendGridProvider) buildMail(msg Message) *mail.SGMailV3 {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(p.fromName, p.fromEmail))
	message.Subject = msg.Subject

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", msg.To))
	message.AddPersonalizations(personalization)
	message.AddContent(mail.NewContent("text/plain", msg.Body))

	for _, a := range msg.Attachments {
		attachment := mail.NewAttachment()
		attachment.SetContent(base64.StdEncoding.EncodeToString(a.Data))
		attachment.SetFilename(a.Filename)
		if a.ContentType != "" {
			attachment.SetType(a.ContentType)
		}
		attachment.SetDisposition("attachment")
		message.AddAttachment(attachment)
	}

	return message
}
