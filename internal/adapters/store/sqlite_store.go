package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/syncapply/syncapply/internal/core"
)

// SQLiteStore is a SQLite implementation of the ApplicationRepository interface
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// email_id is the primary key; the duplicate handling in the tracker
	// relies on this constraint.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS active_applications (
			email_id TEXT PRIMARY KEY,
			company_name TEXT,
			job_title TEXT,
			status TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// GetByEmailID returns the record for an email id, or nil when absent
func (s *SQLiteStore) GetByEmailID(ctx context.Context, emailID string) (*core.ApplicationRecord, error) {
	var record core.ApplicationRecord

	err := s.db.QueryRowContext(ctx, `
		SELECT company_name, job_title, status, email_id
		FROM active_applications
		WHERE email_id = ?
	`, emailID).Scan(&record.CompanyName, &record.JobTitle, &record.Status, &record.EmailID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query application: %w", err)
	}
	return &record, nil
}

// Insert stores a new record, rejecting duplicates by email id
func (s *SQLiteStore) Insert(ctx context.Context, record *core.ApplicationRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO active_applications (email_id, company_name, job_title, status)
		VALUES (?, ?, ?, ?)
	`, record.EmailID, record.CompanyName, record.JobTitle, record.Status)

	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) &&
			(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
				sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
			return core.ErrDuplicateApplication
		}
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// List returns all records, unordered
func (s *SQLiteStore) List(ctx context.Context) ([]core.ApplicationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
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

// Stop closes the database connection
func (s *SQLiteStore) Stop() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
