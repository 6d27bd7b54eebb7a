package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/syncapply/syncapply/internal/core"
)

// mysqlDuplicateEntry is the MySQL error number for a duplicate key.
const mysqlDuplicateEntry = 1062

// MySQLStore is a MySQL implementation of the ApplicationRepository interface
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a new MySQL store
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS active_applications (
			email_id VARCHAR(255) PRIMARY KEY,
			company_name TEXT,
			job_title TEXT,
			status VARCHAR(64)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

// GetByEmailID returns the record for an email id, or nil when absent
func (s *MySQLStore) GetByEmailID(ctx context.Context, emailID string) (*core.ApplicationRecord, error) {
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
func (s *MySQLStore) Insert(ctx context.Context, record *core.ApplicationRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO active_applications (email_id, company_name, job_title, status)
		VALUES (?, ?, ?, ?)
	`, record.EmailID, record.CompanyName, record.JobTitle, record.Status)

	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return core.ErrDuplicateApplication
		}
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// List returns all records, unordered
func (s *MySQLStore) List(ctx context.Context) ([]core.ApplicationRecord, error) {
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
func (s *MySQLStore) Stop() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close MySQL database", zap.Error(err))
	}
}
