package main

import (
	"context"
	"log/slog"

	"github.com/sheetinvoicer/pkg/archive"
	"github.com/sheetinvoicer/pkg/config"
	"github.com/sheetinvoicer/pkg/dispatch"
	"github.com/sheetinvoicer/pkg/mailer"
	"github.com/sheetinvoicer/pkg/mailer/resend"
	"github.com/sheetinvoicer/pkg/pdf"
	"github.com/sheetinvoicer/pkg/store"
)

// deps holds everything a command needs to run invoices.
type deps struct {
	log     *slog.Logger
	service *dispatch.Service
	db      *store.Postgres
}

func (d *deps) Close() {
	if d.db != nil {
		if err := d.db.Close(); err != nil {
			d.log.Warn("failed to close database", slog.String("error", err.Error()))
		}
	}
}

// buildDeps wires the dispatch service from cfg. When dryRun is set emails
// are logged instead of delivered and nothing is archived or recorded.
func buildDeps(ctx context.Context, cfg config.Config, log *slog.Logger, dryRun bool) (*deps, error) {
	d := &deps{log: log}

	var sender mailer.Sender = &mailer.LogSender{Logger: log}
	switch {
	case dryRun:
		log.Info("dry run, invoices will only be logged")
	case cfg.Mail.Resend.APIKey != "":
		sender = resend.New(cfg.Mail.Resend)
	default:
		log.Warn("no email provider configured, invoices will only be logged")
	}

	body, err := mailer.NewInvoiceTemplate(cfg.Mail.FooterMarkdown)
	if err != nil {
		return nil, err
	}

	opts := []dispatch.Option{
		dispatch.WithLogger(log),
		dispatch.WithOptions(dispatch.Options{
			AttachPDF:           cfg.Mail.AttachPDF,
			RequireEmailMapping: cfg.Mail.RequireEmailMapping,
			From:                cfg.Mail.Resend.From,
		}),
	}

	if !dryRun && cfg.Storage.Enabled() {
		s3, err := archive.NewS3(cfg.Storage)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dispatch.WithArchiver(s3))
		log.Info("archiving invoices", slog.String("bucket", cfg.Storage.Bucket))
	}

	if !dryRun && cfg.Database.URL != "" {
		db, err := openStore(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		d.db = db
		opts = append(opts, dispatch.WithRecorder(db))
	}

	d.service = dispatch.New(pdf.New("SheetInvoicer"), body, sender, opts...)
	return d, nil
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (*store.Postgres, error) {
	db, err := store.Open(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
