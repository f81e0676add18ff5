// Package mailer defines the email message model and the provider contract
// used to deliver invoices.
package mailer

import (
	"context"
	"errors"
	"log/slog"
)

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates no HTML content was provided.
	ErrNoContent = errors.New("email must have HTML content")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("failed to render email")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")
)

// DefaultFrom is the sender used when none is configured.
const DefaultFrom = "SheetInvoicer <onboarding@resend.dev>"

// Sender defines the minimal interface that email providers must implement.
type Sender interface {
	// Send delivers an email message. The Email must have To, Subject, and
	// HTML already set.
	Send(ctx context.Context, email *Email) error
}

// Email represents a fully-prepared email message ready for sending.
type Email struct {
	From        string
	Subject     string
	HTML        string
	To          []string
	Attachments []Attachment
}

// Attachment represents an email attachment.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Validate checks the fields every provider requires.
func (e *Email) Validate() error {
	if len(e.To) == 0 || e.To[0] == "" {
		return ErrNoRecipient
	}
	if e.Subject == "" {
		return ErrNoSubject
	}
	if e.HTML == "" {
		return ErrNoContent
	}
	return nil
}

// LogSender logs messages instead of delivering them.
type LogSender struct {
	Logger *slog.Logger
}

// Send implements Sender.
func (s *LogSender) Send(ctx context.Context, email *Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	if s.Logger != nil {
		attachments := make([]string, 0, len(email.Attachments))
		for _, a := range email.Attachments {
			attachments = append(attachments, a.Filename)
		}
		s.Logger.InfoContext(ctx, "email not delivered, no provider configured",
			slog.Any("to", email.To),
			slog.String("subject", email.Subject),
			slog.Any("attachments", attachments),
		)
	}
	return nil
}
