package resend

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sheetinvoicer/pkg/mailer"
)

type mockEmails struct {
	mock.Mock
}

func (m *mockEmails) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	args := m.Called(ctx, params)
	resp, _ := args.Get(0).(*resend.SendEmailResponse)
	return resp, args.Error(1)
}

func TestSender_Send_MapsEmail(t *testing.T) {
	t.Parallel()

	emails := &mockEmails{}
	s := newWithService(emails, "")

	emails.On("SendWithContext", mock.Anything, mock.MatchedBy(func(req *resend.SendEmailRequest) bool {
		return req.From == mailer.DefaultFrom &&
			len(req.To) == 1 && req.To[0] == "a@x.com" &&
			req.Subject == "Invoice from Acme" &&
			req.Html == "<p>hi</p>" &&
			len(req.Attachments) == 1 &&
			req.Attachments[0].Filename == "invoice-1.pdf" &&
			req.Attachments[0].ContentType == "application/pdf" &&
			string(req.Attachments[0].Content) == "%PDF"
	})).Return(&resend.SendEmailResponse{Id: "msg_1"}, nil)

	err := s.Send(context.Background(), &mailer.Email{
		To:      []string{"a@x.com"},
		Subject: "Invoice from Acme",
		HTML:    "<p>hi</p>",
		Attachments: []mailer.Attachment{{
			Filename:    "invoice-1.pdf",
			ContentType: "application/pdf",
			Content:     []byte("%PDF"),
		}},
	})

	require.NoError(t, err)
	emails.AssertExpectations(t)
}

func TestSender_Send_EmailFromOverridesDefault(t *testing.T) {
	t.Parallel()

	emails := &mockEmails{}
	s := newWithService(emails, "Billing <billing@acme.test>")

	emails.On("SendWithContext", mock.Anything, mock.MatchedBy(func(req *resend.SendEmailRequest) bool {
		return req.From == "Other <other@acme.test>" && req.Attachments == nil
	})).Return(&resend.SendEmailResponse{}, nil)

	err := s.Send(context.Background(), &mailer.Email{
		From:    "Other <other@acme.test>",
		To:      []string{"a@x.com"},
		Subject: "s",
		HTML:    "h",
	})

	require.NoError(t, err)
	emails.AssertExpectations(t)
}

func TestSender_Send_ProviderError(t *testing.T) {
	t.Parallel()

	emails := &mockEmails{}
	s := newWithService(emails, "")
	providerErr := errors.New("rate limited")

	emails.On("SendWithContext", mock.Anything, mock.Anything).Return(nil, providerErr)

	err := s.Send(context.Background(), &mailer.Email{To: []string{"a@x.com"}, Subject: "s", HTML: "h"})

	require.ErrorIs(t, err, providerErr)
	require.ErrorIs(t, err, mailer.ErrSendFailed)
	require.Contains(t, err.Error(), "resend")
}

func TestSender_Send_InvalidEmail(t *testing.T) {
	t.Parallel()

	emails := &mockEmails{}
	s := newWithService(emails, "")

	err := s.Send(context.Background(), &mailer.Email{Subject: "s", HTML: "h"})

	require.ErrorIs(t, err, mailer.ErrNoRecipient)
	emails.AssertNotCalled(t, "SendWithContext")
}
