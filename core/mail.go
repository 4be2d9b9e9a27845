package core

import (
	"bytes"
	"net/mail"
)

type (
	// Attachment is a file attached to an EmailMessage.
	// Content must be base64-encoded.
	Attachment struct {
		Filename    string
		ContentType string
		Content     *bytes.Buffer
	}

	// EmailMessage is a transport-agnostic email.
	EmailMessage struct {
		To          []mail.Address
		Cc          []mail.Address
		Bcc         []mail.Address
		Subject     string
		TextContent string
		HTMLContent string
		Attachments []Attachment
	}

	// EmailService sends messages in the background; failed deliveries are
	// logged, never surfaced to callers.
	EmailService interface {
		SendMessages(messages ...*EmailMessage)
	}
)

func (m EmailMessage) HasRecipients() bool {
	return len(m.To) > 0 || len(m.Cc) > 0 || len(m.Bcc) > 0
}

func (m EmailMessage) HasContent() bool {
	return m.TextContent != "" || m.HTMLContent != ""
}

func (m EmailMessage) HasAttachments() bool {
	return len(m.Attachments) > 0
}
