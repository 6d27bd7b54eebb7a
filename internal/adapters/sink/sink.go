// Package sink provides debug destinations for formatted emails.
package sink

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// FileSink writes each formatted email to a fixed file, overwriting the
// previous one. Useful for inspecting exactly what the classifier saw.
type FileSink struct {
	path   string
	logger *zap.Logger
}

// NewFileSink creates a new file sink
func NewFileSink(path string, logger *zap.Logger) *FileSink {
	return &FileSink{
		path:   path,
		logger: logger,
	}
}

// Write stores the formatted email text
func (s *FileSink) Write(formatted string) error {
	if err := os.WriteFile(s.path, []byte(formatted), 0o644); err != nil {
		return fmt.Errorf("failed to write debug email file: %w", err)
	}
	s.logger.Debug("Saved email for debugging", zap.String("path", s.path))
	return nil
}

// NoopSink discards everything. It is the default sink.
type NoopSink struct{}

// NewNoopSink creates a new no-op sink
func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

// Write discards the formatted email text
func (s *NoopSink) Write(string) error {
	return nil
}
