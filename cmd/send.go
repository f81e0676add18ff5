package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sheetinvoicer/pkg/csvdata"
	"github.com/sheetinvoicer/pkg/dispatch"
	"github.com/sheetinvoicer/pkg/invoice"
	"github.com/sheetinvoicer/pkg/logger"
)

// requestFlags describe a generate request on the command line.
func requestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "csv", Usage: "CSV export to read", Required: true},
		&cli.StringSliceFlag{Name: "map", Aliases: []string{"m"}, Usage: "field=header column mapping, e.g. clientEmail=Email"},
		&cli.StringFlag{Name: "business-name", Usage: "your business name", Required: true},
		&cli.StringFlag{Name: "business-address", Usage: "your business address"},
		&cli.StringFlag{Name: "tax-id", Usage: "your tax id"},
	}
}

func sendCommand() *cli.Command {
	return &cli.Command{
		Name:  "send",
		Usage: "email one invoice per client in a CSV export",
		Flags: append(requestFlags(),
			&cli.BoolFlag{Name: "dry-run", Usage: "log emails instead of sending them"},
		),
		Action: send,
	}
}

func send(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	req, err := requestFromFlags(c)
	if err != nil {
		return err
	}

	d, err := buildDeps(c.Context, cfg, log, c.Bool("dry-run"))
	if err != nil {
		return err
	}
	defer d.Close()

	sum, err := d.service.Generate(c.Context, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(sum)
}

func requestFromFlags(c *cli.Context) (dispatch.Request, error) {
	mapping, err := parseMapping(c.StringSlice("map"))
	if err != nil {
		return dispatch.Request{}, err
	}

	f, err := os.Open(c.String("csv"))
	if err != nil {
		return dispatch.Request{}, err
	}
	defer f.Close()

	table, err := csvdata.Parse(f)
	if err != nil {
		return dispatch.Request{}, fmt.Errorf("parse %s: %w", c.String("csv"), err)
	}

	return dispatch.Request{
		CSVData:      table.Rows,
		FieldMapping: mapping,
		BusinessInfo: invoice.BusinessInfo{
			Name:    c.String("business-name"),
			Address: c.String("business-address"),
			TaxID:   c.String("tax-id"),
		},
	}, nil
}

// parseMapping reads field=header pairs.
func parseMapping(pairs []string) (invoice.FieldMapping, error) {
	m := make(invoice.FieldMapping, len(pairs))
	for _, p := range pairs {
		field, header, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(header) == "" {
			return nil, fmt.Errorf("invalid mapping %q, want field=header", p)
		}
		f := invoice.Field(strings.TrimSpace(field))
		if !f.Valid() {
			return nil, fmt.Errorf("unknown field %q in mapping %q", f, p)
		}
		m[f] = strings.TrimSpace(header)
	}
	return m, nil
}
