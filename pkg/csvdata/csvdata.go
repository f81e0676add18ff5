// Package csvdata turns uploaded spreadsheet exports into header-keyed rows.
package csvdata

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/sheetinvoicer/pkg/invoice"
)

var (
	// ErrEmpty indicates the input contained no data.
	ErrEmpty = errors.New("csv input is empty")

	// ErrNoHeader indicates the first line produced no column names.
	ErrNoHeader = errors.New("csv input has no header row")
)

// maxLineSize bounds a single CSV line.
const maxLineSize = 1 << 20

// Table is a parsed CSV export.
type Table struct {
	Headers []string      `json:"headers"`
	Rows    []invoice.Row `json:"rows"`
}

// Parse reads a CSV export. The first line is the header. Fields are split on
// commas, trimmed, and stripped of double quotes; quoted commas are not
// supported. Blank lines are skipped and missing trailing values are empty.
func Parse(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var t *Table
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if t == nil {
			headers := splitLine(line)
			if !hasName(headers) {
				return nil, ErrNoHeader
			}
			t = &Table{Headers: headers, Rows: []invoice.Row{}}
			continue
		}
		values := splitLine(line)
		row := make(invoice.Row, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(values) {
				row[h] = values[i]
			} else {
				row[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrEmpty
	}
	return t, nil
}

func splitLine(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(strings.ReplaceAll(p, `"`, ""))
	}
	return parts
}

func hasName(headers []string) bool {
	for _, h := range headers {
		if h != "" {
			return true
		}
	}
	return false
}
