package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"time"

	"github.com/google/uuid"
)

// implicitTLSPort is the SMTPS port; other ports use STARTTLS when offered.
const implicitTLSPort = 465

// SMTPProvider sends mail over SMTP.
type SMTPProvider struct {
	host     string
	port     int
	username string
	password string
	from     string

	now      func() time.Time
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPProvider creates an SMTP provider. Authentication is skipped when no
// credentials are given.
func NewSMTPProvider(host string, port int, username, password, from string) *SMTPProvider {
	p := &SMTPProvider{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		now:      time.Now,
	}
	p.sendMail = smtp.SendMail
	if port == implicitTLSPort {
		p.sendMail = p.sendTLS
	}
	return p
}

// Send delivers msg and returns the generated Message-ID.
func (p *SMTPProvider) Send(_ context.Context, msg Message) (string, error) {
	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), p.host)

	raw, err := p.buildMessage(msg, messageID)
	if err != nil {
		return "", err
	}

	var auth smtp.Auth
	if p.username != "" && p.password != "" {
		auth = smtp.PlainAuth("", p.username, p.password, p.host)
	}

	addr := fmt.Sprintf("%s:%d", p.host, p.port)
	if err := p.sendMail(addr, auth, p.from, []string{msg.To}, raw); err != nil {
		return "", fmt.Errorf("smtp error: %w", err)
	}
	return messageID, nil
}

// buildMessage renders a multipart/mixed message with a text body and base64
// encoded attachments.
func (p *SMTPProvider) buildMessage(msg Message, messageID string) ([]byte, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=UTF-8")
	textHeader.Set("Content-Transfer-Encoding", "base64")
	part, err := writer.CreatePart(textHeader)
	if err != nil {
		return nil, fmt.Errorf("create text part: %w", err)
	}
	if _, err := part.Write(wrapBase64([]byte(msg.Body))); err != nil {
		return nil, fmt.Errorf("write text part: %w", err)
	}

	for _, a := range msg.Attachments {
		contentType := a.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header := textproto.MIMEHeader{}
		header.Set("Content-Type", mime.FormatMediaType(contentType, map[string]string{"name": a.Filename}))
		header.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
		header.Set("Content-Transfer-Encoding", "base64")

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("create attachment part: %w", err)
		}
		if _, err := part.Write(wrapBase64(a.Data)); err != nil {
			return nil, fmt.Errorf("write attachment %s: %w", a.Filename, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "From: %s\r\n", p.from)
	fmt.Fprintf(&out, "To: %s\r\n", msg.To)
	fmt.Fprintf(&out, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&out, "Date: %s\r\n", p.now().Format(time.RFC1123Z))
	fmt.Fprintf(&out, "Message-ID: %s\r\n", messageID)
	out.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&out, "Content-Type: multipart/mixed; boundary=%q\r\n", writer.Boundary())
	out.WriteString("\r\n")
	out.Write(body.Bytes())

	return out.Bytes(), nil
}

// sendTLS delivers over an implicit TLS connection.
func (p *SMTPProvider) sendTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{
		ServerName: p.host,
		MinVersion: tls.VersionTLS12,
	})
	if err != nil {
		return fmt.Errorf("tls dial error: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, p.host)
	if err != nil {
		return fmt.Errorf("smtp client error: %w", err)
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth error: %w", err)
		}
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp mail error: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt error: %w", err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data error: %w", err)
	}
	if _, err := writer.Write(msg); err != nil {
		return fmt.Errorf("smtp write error: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("smtp close error: %w", err)
	}

	return client.Quit()
}

// wrapBase64 encodes data in 76-column lines as required for MIME bodies.
func wrapBase64(data []byte) []byte {
	const lineLen = 76
	encoded := base64.StdEncoding.EncodeToString(data)

	var out bytes.Buffer
	for len(encoded) > lineLen {
		out.WriteString(encoded[:lineLen])
		out.WriteString("\r\n")
		encoded = encoded[lineLen:]
	}
	out.WriteString(encoded)
	out.WriteString("\r\n")
	return out.Bytes()
}
