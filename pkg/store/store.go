// Package store records the outcome of every invoice dispatch in Postgres.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
)

//go:embed migrations/*.sql
var migrations embed.FS

var (
	// ErrConnect indicates the database could not be reached.
	ErrConnect = errors.New("store: failed to connect to database")

	// ErrMigrate indicates migrations could not be applied.
	ErrMigrate = errors.New("store: failed to apply migrations")

	// ErrNotFound indicates no records matched.
	ErrNotFound = errors.New("store: not found")
)

// Dispatch statuses.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Dispatch is the recorded outcome of sending one client's invoice.
type Dispatch struct {
	ID          int64           `json:"id"`
	BatchID     string          `json:"batchId"`
	ClientEmail string          `json:"clientEmail"`
	ClientName  string          `json:"clientName"`
	ItemCount   int             `json:"itemCount"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	Error       string          `json:"error,omitempty"`
	ArchiveKey  string          `json:"archiveKey,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Recorder persists dispatch outcomes.
type Recorder interface {
	Record(ctx context.Context, d *Dispatch) error
}

// Nop discards records.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(context.Context, *Dispatch) error { return nil }

// Postgres stores dispatches in the invoice_dispatches table.
type Postgres struct {
	DB *sql.DB
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Join(ErrConnect, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrConnect, err)
	}
	return &Postgres{DB: db}, nil
}

// Close closes the underlying database.
func (p *Postgres) Close() error {
	return p.DB.Close()
}

// Ping checks the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.DB.PingContext(ctx)
}

// Migrate applies the embedded migrations.
func (p *Postgres) Migrate(ctx context.Context, log *slog.Logger) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLogger{log})

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrMigrate, err)
	}
	if err := goose.UpContext(ctx, p.DB, "migrations"); err != nil {
		return errors.Join(ErrMigrate, err)
	}
	return nil
}

const insertDispatch = `
INSERT INTO invoice_dispatches
    (batch_id, client_email, client_name, item_count, total, status, error, archive_key)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at`

// Record inserts a dispatch and fills in its id and creation time.
func (p *Postgres) Record(ctx context.Context, d *Dispatch) error {
	err := p.DB.QueryRowContext(ctx, insertDispatch,
		d.BatchID, d.ClientEmail, d.ClientName, d.ItemCount,
		d.Total.StringFixed(2), d.Status, d.Error, d.ArchiveKey,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: insert dispatch: %w", err)
	}
	return nil
}

const selectBatch = `
SELECT id, batch_id, client_email, client_name, item_count, total, status, error, archive_key, created_at
FROM invoice_dispatches
WHERE batch_id = $1
ORDER BY id`

// ListBatch returns the dispatches of a batch in insertion order.
func (p *Postgres) ListBatch(ctx context.Context, batchID string) ([]Dispatch, error) {
	rows, err := p.DB.QueryContext(ctx, selectBatch, batchID)
	if err != nil {
		return nil, fmt.Errorf("store: list batch: %w", err)
	}
	defer rows.Close()

	var out []Dispatch
	for rows.Next() {
		var (
			d     Dispatch
			total string
		)
		if err := rows.Scan(&d.ID, &d.BatchID, &d.ClientEmail, &d.ClientName, &d.ItemCount,
			&total, &d.Status, &d.Error, &d.ArchiveKey, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan dispatch: %w", err)
		}
		if d.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("store: parse total: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list batch: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

type gooseLogger struct {
	log *slog.Logger
}

func (g *gooseLogger) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

func (g *gooseLogger) Fatalf(format string, args ...any) {
	g.log.Error(fmt.Sprintf(format, args...))
}
