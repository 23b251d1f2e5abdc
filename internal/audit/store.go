package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/notesentry/notesentry/internal/config"
	"github.com/notesentry/notesentry/internal/scrub"
)

// Record is one row of the audit trail: what a redaction pass removed, never
// what it saw. Only counts are persisted.
type Record struct {
	ID            int64     `db:"id"`
	RequestID     string    `db:"request_id"`
	CreatedAt     time.Time `db:"created_at"`
	Total         int       `db:"total"`
	Emails        int       `db:"emails"`
	Phones        int       `db:"phones"`
	Dates         int       `db:"dates"`
	RelativeDates int       `db:"relative_dates"`
	SSNs          int       `db:"ssn"`
	MRNs          int       `db:"mrn"`
	ZipCodes      int       `db:"zip_codes"`
	Persons       int       `db:"persons"`
	Facilities    int       `db:"facilities"`
	Addresses     int       `db:"addresses"`
	Coordinates   int       `db:"coordinates"`
}

// NewRecord builds a record from a redaction result.
func NewRecord(requestID string, stats scrub.Stats) *Record {
	return &Record{
		RequestID:     requestID,
		Total:         stats.Total(),
		Emails:        stats.Emails,
		Phones:        stats.Phones,
		Dates:         stats.Dates,
		RelativeDates: stats.RelativeDates,
		SSNs:          stats.SSNs,
		MRNs:          stats.MRNs,
		ZipCodes:      stats.ZipCodes,
		Persons:       stats.Persons,
		Facilities:    stats.Facilities,
		Addresses:     stats.Addresses,
		Coordinates:   stats.Coordinates,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS audit_records (
	id              BIGSERIAL PRIMARY KEY,
	request_id      TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	total           INTEGER NOT NULL,
	emails          INTEGER NOT NULL DEFAULT 0,
	phones          INTEGER NOT NULL DEFAULT 0,
	dates           INTEGER NOT NULL DEFAULT 0,
	relative_dates  INTEGER NOT NULL DEFAULT 0,
	ssn             INTEGER NOT NULL DEFAULT 0,
	mrn             INTEGER NOT NULL DEFAULT 0,
	zip_codes       INTEGER NOT NULL DEFAULT 0,
	persons         INTEGER NOT NULL DEFAULT 0,
	facilities      INTEGER NOT NULL DEFAULT 0,
	addresses       INTEGER NOT NULL DEFAULT 0,
	coordinates     INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_audit_records_created_at ON audit_records (created_at DESC);`

// Store persists redaction audit records in PostgreSQL.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewStore connects to the audit database and ensures the schema exists.
func NewStore(cfg *config.AuditConfig, logger *zap.Logger) (*Store, error) {
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	store := &Store{
		db:     db,
		logger: logger,
	}

	if err := store.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize audit store: %w", err)
	}

	logger.Info("Audit store initialized",
		zap.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns))

	return store, nil
}

// initialize verifies connectivity and creates the audit table.
func (s *Store) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure audit schema: %w", err)
	}

	return nil
}

// Insert adds an audit record.
func (s *Store) Insert(ctx context.Context, record *Record) error {
	query := `
		INSERT INTO audit_records (
			request_id, total, emails, phones, dates, relative_dates,
			ssn, mrn, zip_codes, persons, facilities, addresses, coordinates)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query,
		record.RequestID,
		record.Total,
		record.Emails,
		record.Phones,
		record.Dates,
		record.RelativeDates,
		record.SSNs,
		record.MRNs,
		record.ZipCodes,
		record.Persons,
		record.Facilities,
		record.Addresses,
		record.Coordinates,
	).Scan(&record.ID, &record.CreatedAt)

	if err != nil {
		s.logger.Error("Failed to insert audit record",
			zap.Error(err),
			zap.String("request_id", record.RequestID))
		return fmt.Errorf("failed to insert audit record: %w", err)
	}

	s.logger.Debug("Audit record inserted",
		zap.Int64("id", record.ID),
		zap.String("request_id", record.RequestID),
		zap.Int("total", record.Total))

	return nil
}

// RecentRecords returns the newest audit records, up to limit.
func (s *Store) RecentRecords(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	var records []Record
	query := `SELECT * FROM audit_records ORDER BY created_at DESC LIMIT $1`
	if err := s.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	return records, nil
}

// Totals aggregates category counts across the whole audit trail.
func (s *Store) Totals(ctx context.Context) (*Record, error) {
	var totals Record
	query := `
		SELECT
			COALESCE(SUM(total), 0)          AS total,
			COALESCE(SUM(emails), 0)         AS emails,
			COALESCE(SUM(phones), 0)         AS phones,
			COALESCE(SUM(dates), 0)          AS dates,
			COALESCE(SUM(relative_dates), 0) AS relative_dates,
			COALESCE(SUM(ssn), 0)            AS ssn,
			COALESCE(SUM(mrn), 0)            AS mrn,
			COALESCE(SUM(zip_codes), 0)      AS zip_codes,
			COALESCE(SUM(persons), 0)        AS persons,
			COALESCE(SUM(facilities), 0)     AS facilities,
			COALESCE(SUM(addresses), 0)      AS addresses,
			COALESCE(SUM(coordinates), 0)    AS coordinates
		FROM audit_records`
	if err := s.db.GetContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("failed to aggregate audit records: %w", err)
	}
	return &totals, nil
}

// Close releases the database connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// maskDatabaseURL hides credentials in the URL for logging
func maskDatabaseURL(url string) string {
	if at := strings.LastIndex(url, "@"); at != -1 {
		if scheme := strings.Index(url, "://"); scheme != -1 {
			return url[:scheme+3] + "***" + url[at:]
		}
	}
	return url
}
