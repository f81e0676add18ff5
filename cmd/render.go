package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sheetinvoicer/pkg/logger"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "write one PDF per client without sending email",
		Flags: append(requestFlags(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory", Value: "invoices"},
		),
		Action: render,
	}
}

func render(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	req, err := requestFromFlags(c)
	if err != nil {
		return err
	}

	d, err := buildDeps(c.Context, cfg, log, true)
	if err != nil {
		return err
	}
	defer d.Close()

	rendered, err := d.service.Render(c.Context, req)
	if err != nil {
		return err
	}

	out := c.String("out")
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	for _, r := range rendered {
		path := filepath.Join(out, pdfFileName(r.Invoice.ClientEmail))
		if err := os.WriteFile(path, r.PDF, 0o644); err != nil {
			return err
		}
		log.Info("invoice written", slog.String("client_email", r.Invoice.ClientEmail), slog.String("path", path))
	}
	fmt.Printf("wrote %d invoices to %s\n", len(rendered), out)
	return nil
}

// pdfFileName turns a client email into a safe file name.
func pdfFileName(email string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '@', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, email)
	return strings.Trim(name, ".") + ".pdf"
}
