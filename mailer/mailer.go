// Package mailer dispatches report emails. Failures are always surfaced to
// the caller; a send is only reported successful when the provider accepted
// the message.
package mailer

import (
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// XLSXContentType is the MIME type for xlsx attachments
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Message is one outbound email
type Message struct {
	Recipient      string
	Subject        string
	PlainBody      string
	HTMLBody       string
	Attachment     []byte
	AttachmentName string
}

// Mailer sends report emails
type Mailer interface {
	Send(m Message) error
}

// SendGrid is the production Mailer backed by the SendGrid API
type SendGrid struct {
	APIKey      string
	FromName    string
	FromAddress string
}

// NewSendGrid creates a SendGrid mailer with the reporting system sender
// identity
func NewSendGrid(apiKey string) *SendGrid {
	return &SendGrid{
		APIKey:      apiKey,
		FromName:    "Densa PHCU Reporting",
		FromAddress: "no-reply@densaphcu.org",
	}
}

// Send dispatches the message and returns an error on any transport failure
// or non-2xx provider response
func (s *SendGrid) Send(m Message) error {
	from := mail.NewEmail(s.FromName, s.FromAddress)
	to := mail.NewEmail("", m.Recipient)
	msg := mail.NewSingleEmail(from, m.Subject, to, m.PlainBody, m.HTMLBody)

	if len(m.Attachment) > 0 {
		a := mail.NewAttachment()
		a.SetContent(base64.StdEncoding.EncodeToString(m.Attachment))
		a.SetType(XLSXContentType)
		a.SetFilename(m.AttachmentName)
		a.SetDisposition("attachment")
		msg.AddAttachment(a)
	}

	client := sendgrid.NewSendClient(s.APIKey)
	resp, err := client.Send(msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
