// Package resend delivers invoice emails through the Resend API.
package resend

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/sheetinvoicer/pkg/mailer"
)

// Config holds Resend email provider configuration.
type Config struct {
	APIKey string `yaml:"api_key"`
	From   string `yaml:"from"`
}

// emailService is the part of the Resend client the sender uses.
type emailService interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	emails emailService
	from   string
}

// New creates a new Resend sender.
func New(cfg Config) *Sender {
	client := resend.NewClient(cfg.APIKey)
	return newWithService(client.Emails, cfg.From)
}

func newWithService(svc emailService, from string) *Sender {
	if from == "" {
		from = mailer.DefaultFrom
	}
	return &Sender{emails: svc, from: from}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}

	from := email.From
	if from == "" {
		from = s.from
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
	}
	if len(email.Attachments) > 0 {
		req.Attachments = convertAttachments(email.Attachments)
	}

	if _, err := s.emails.SendWithContext(ctx, req); err != nil {
		return errors.Join(mailer.ErrSendFailed, fmt.Errorf("resend: %w", err))
	}
	return nil
}

func convertAttachments(attachments []mailer.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
		}
	}
	return result
}
