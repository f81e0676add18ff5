// Package dispatch turns an uploaded spreadsheet into per-client invoices and
// emails them.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sheetinvoicer/pkg/archive"
	"github.com/sheetinvoicer/pkg/invoice"
	"github.com/sheetinvoicer/pkg/logger"
	"github.com/sheetinvoicer/pkg/mailer"
	"github.com/sheetinvoicer/pkg/pdf"
	"github.com/sheetinvoicer/pkg/store"
)

// Request is the input of one generate-invoice call.
type Request struct {
	CSVData      []invoice.Row        `json:"csvData"`
	FieldMapping invoice.FieldMapping `json:"fieldMapping"`
	BusinessInfo invoice.BusinessInfo `json:"businessInfo"`
}

// Summary reports how many invoices were delivered.
type Summary struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	BatchID string `json:"batchId"`
}

// PDFRenderer renders one client's invoice.
type PDFRenderer interface {
	Render(inv *invoice.Invoice, biz invoice.BusinessInfo) ([]byte, error)
}

// BodyRenderer renders the email body for one client's invoice.
type BodyRenderer interface {
	Render(inv *invoice.Invoice, biz invoice.BusinessInfo, date time.Time) (string, error)
}

// Options tune the dispatch behavior.
type Options struct {
	// AttachPDF renders a PDF per client and attaches it to the email.
	AttachPDF bool
	// RequireEmailMapping rejects requests without a clientEmail mapping.
	RequireEmailMapping bool
	// From overrides the provider's sender address.
	From string
}

// DefaultOptions attach PDFs and require the email mapping.
func DefaultOptions() Options {
	return Options{AttachPDF: true, RequireEmailMapping: true}
}

// Service validates requests, groups rows by client and sends one invoice per
// client. Clients are processed one after another; a failure for one client
// is logged and counted and does not stop the rest.
type Service struct {
	renderer PDFRenderer
	body     BodyRenderer
	sender   mailer.Sender
	archiver archive.Archiver
	recorder store.Recorder
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
	opts     Options
}

// Option configures a Service.
type Option func(*Service)

// WithArchiver stores a copy of each delivered PDF.
func WithArchiver(a archive.Archiver) Option {
	return func(s *Service) {
		if a != nil {
			s.archiver = a
		}
	}
}

// WithRecorder persists the outcome of every client dispatch.
func WithRecorder(r store.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOptions replaces the default behavior options.
func WithOptions(o Options) Option {
	return func(s *Service) {
		s.opts = o
	}
}

// WithClock sets the time source used for invoice dates and file names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the batch id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// New creates a Service.
func New(renderer PDFRenderer, body BodyRenderer, sender mailer.Sender, opts ...Option) *Service {
	s := &Service{
		renderer: renderer,
		body:     body,
		sender:   sender,
		archiver: archive.Nop{},
		recorder: store.Nop{},
		logger:   logger.NewNope(),
		now:      time.Now,
		newID:    uuid.NewString,
		opts:     DefaultOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks a request and groups its rows. Errors are *ValidationError.
func (s *Service) Validate(req Request) (*invoice.Groups, error) {
	if req.BusinessInfo.Name == "" {
		return nil, ErrBusinessNameRequired
	}

	mapping := req.FieldMapping.Normalize()
	if s.opts.RequireEmailMapping && !mapping.Has(invoice.FieldClientEmail) {
		return nil, ErrEmailMappingRequired
	}

	groups := invoice.Group(req.CSVData, mapping)
	if groups.Len() == 0 {
		return nil, ErrNoClients
	}
	return groups, nil
}

// Generate validates the request and sends one invoice per distinct client
// email. The returned summary satisfies Sent+Failed == number of clients.
func (s *Service) Generate(ctx context.Context, req Request) (*Summary, error) {
	groups, err := s.Validate(req)
	if err != nil {
		return nil, err
	}

	batchID := s.newID()
	log := s.logger.With(slog.String("batch_id", batchID))
	log.InfoContext(ctx, "generating invoices",
		slog.Int("rows", len(req.CSVData)),
		slog.Int("clients", groups.Len()),
	)

	sum := &Summary{Success: true, BatchID: batchID}
	for _, inv := range groups.Invoices() {
		d := &store.Dispatch{
			BatchID:     batchID,
			ClientEmail: inv.ClientEmail,
			ClientName:  inv.ClientName,
			ItemCount:   len(inv.Items),
			Total:       inv.Total(),
			Status:      store.StatusSent,
		}

		pdfBytes, err := s.send(ctx, inv, req.BusinessInfo)
		if err != nil {
			log.ErrorContext(ctx, "failed to send invoice",
				slog.String("client_email", inv.ClientEmail),
				slog.String("error", err.Error()),
			)
			sum.Failed++
			d.Status = store.StatusFailed
			d.Error = err.Error()
		} else {
			log.InfoContext(ctx, "invoice sent", slog.String("client_email", inv.ClientEmail))
			sum.Sent++
			d.ArchiveKey = s.archive(ctx, log, batchID, inv, pdfBytes)
		}

		if err := s.recorder.Record(ctx, d); err != nil {
			log.WarnContext(ctx, "failed to record dispatch",
				slog.String("client_email", inv.ClientEmail),
				slog.String("error", err.Error()),
			)
		}
	}

	sum.Message = fmt.Sprintf("Invoices sent to %d clients, %d failed", sum.Sent, sum.Failed)
	return sum, nil
}

// send renders and delivers one invoice, returning the PDF that was attached.
func (s *Service) send(ctx context.Context, inv *invoice.Invoice, biz invoice.BusinessInfo) ([]byte, error) {
	now := s.now()

	html, err := s.body.Render(inv, biz, now)
	if err != nil {
		return nil, err
	}

	email := &mailer.Email{
		From:    s.opts.From,
		To:      []string{inv.ClientEmail},
		Subject: mailer.Subject(biz),
		HTML:    html,
	}

	var pdfBytes []byte
	if s.opts.AttachPDF {
		if pdf.Overflows(inv, biz) {
			s.logger.WarnContext(ctx, "invoice items run past the end of the page",
				slog.String("client_email", inv.ClientEmail),
				slog.Int("items", len(inv.Items)),
			)
		}
		pdfBytes, err = s.renderer.Render(inv, biz)
		if err != nil {
			return nil, err
		}
		email.Attachments = []mailer.Attachment{{
			Filename:    AttachmentName(now),
			ContentType: "application/pdf",
			Content:     pdfBytes,
		}}
	}

	if err := s.sender.Send(ctx, email); err != nil {
		return nil, err
	}
	return pdfBytes, nil
}

func (s *Service) archive(ctx context.Context, log *slog.Logger, batchID string, inv *invoice.Invoice, pdfBytes []byte) string {
	if len(pdfBytes) == 0 {
		return ""
	}
	key, err := s.archiver.Archive(ctx, batchID, inv.ClientEmail, pdfBytes)
	if err != nil {
		log.WarnContext(ctx, "failed to archive invoice",
			slog.String("client_email", inv.ClientEmail),
			slog.String("error", err.Error()),
		)
		return ""
	}
	return key
}

// AttachmentName names the PDF attachment after the send time in unix
// milliseconds.
func AttachmentName(t time.Time) string {
	return fmt.Sprintf("invoice-%d.pdf", t.UnixMilli())
}
