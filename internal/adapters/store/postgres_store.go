package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/syncapply/syncapply/internal/core"
)

// pgUniqueViolation is the SQLSTATE for a unique constraint violation.
const pgUniqueViolation = "23505"

// PostgresStore is a Postgres implementation of the ApplicationRepository
// interface. Supabase deployments point the DSN at their Postgres instance.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStore creates a new Postgres store
func NewPostgresStore(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create Postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS active_applications (
			email_id TEXT PRIMARY KEY,
			company_name TEXT,
			job_title TEXT,
			status TEXT
		)
	`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &PostgresStore{
		pool:   pool,
		logger: logger,
	}, nil
}

// GetByEmailID returns the record for an email id, or nil when absent
func (s *PostgresStore) GetByEmailID(ctx context.Context, emailID string) (*core.ApplicationRecord, error) {
	var record core.ApplicationRecord

	err := s.pool.QueryRow(ctx, `
		SELECT company_name, job_title, status, email_id
		FROM active_applications
		WHERE email_id = $1
	`, emailID).Scan(&record.CompanyName, &record.JobTitle, &record.Status, &record.EmailID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query application: %w", err)
	}
	return &record, nil
}

// Insert stores a new record, rejecting duplicates by email id
func (s *PostgresStore) Insert(ctx context.Context, record *core.ApplicationRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO active_applications (email_id, company_name, job_title, status)
		VALUES ($1, $2, $3, $4)
	`, record.EmailID, record.CompanyName, record.JobTitle, record.Status)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return core.ErrDuplicateApplication
		}
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// List returns all records, unordered
func (s *PostgresStore) List(ctx context.Context) ([]core.ApplicationRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT company_name, job_title, status, email_id
		FROM active_applications
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var records []core.ApplicationRecord
	for rows.Next() {
		var record core.ApplicationRecord
		if err := rows.Scan(&record.CompanyName, &record.JobTitle, &record.Status, &record.EmailID); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read application rows: %w", err)
	}
	return records, nil
}

// Stop closes the connection pool
func (s *PostgresStore) Stop() {
	s.pool.Close()
}
