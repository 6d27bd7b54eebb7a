package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// TrackerService decides whether an email becomes a persisted job
// application. Per message id the flow is: dedup check, classify,
// conditional insert. At most one record is ever stored per email id.
type TrackerService struct {
	repo       ApplicationRepository
	classifier *Classifier
	format     EmailFormatter
	sink       EmailSink
	logger     *zap.Logger
}

// NewTrackerService creates a new tracker service.
func NewTrackerService(
	repo ApplicationRepository,
	classifier *Classifier,
	format EmailFormatter,
	sink EmailSink,
	logger *zap.Logger,
) *TrackerService {
	return &TrackerService{
		repo:       repo,
		classifier: classifier,
		format:     format,
		sink:       sink,
		logger:     logger,
	}
}

// TrackApplication processes one extracted email and reports whether a new
// record was saved. It returns false for every expected skip: the email was
// already tracked, the model said it is not a job application, the model
// call failed, or a concurrent tracker won the insert race. Only store
// failures other than a duplicate-key conflict surface as errors.
func (s *TrackerService) TrackApplication(ctx context.Context, email *ExtractedEmail) (bool, error) {
	// The sink gets the full formatted rendering of every email that comes
	// through; the model sees the body text only.
	if err := s.sink.Write(s.format(email)); err != nil {
		s.logger.Warn("Failed to write email to debug sink", zap.Error(err))
	}

	// Dedup fast path. A hit means the classifier is never invoked, which
	// is the main cost control for repeated fetches of the same inbox.
	existing, err := s.repo.GetByEmailID(ctx, email.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing application: %w", err)
	}
	if existing != nil {
		s.logger.Debug("Email already processed", zap.String("email_id", email.ID))
		return false, nil
	}

	result := s.classifier.Classify(ctx, email.BodyText)
	if !result.IsJobApplication {
		// Covers genuine negatives and classification failures alike; a
		// failed classification never persists a guessed record.
		s.logger.Info("Email skipped",
			zap.String("email_id", email.ID),
			zap.String("reason", result.Reasoning))
		return false, nil
	}

	record := &ApplicationRecord{
		CompanyName: result.CompanyName,
		JobTitle:    result.JobTitle,
		Status:      result.Status,
		// The Gmail message id, not the model-extracted reference.
		EmailID: email.ID,
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		if errors.Is(err, ErrDuplicateApplication) {
			// Lost the check-then-insert race to a concurrent call. The
			// store's uniqueness constraint is the correctness backstop.
			s.logger.Debug("Application inserted concurrently",
				zap.String("email_id", email.ID))
			return false, nil
		}
		return false, fmt.Errorf("failed to save application: %w", err)
	}

	s.logger.Info("Application saved",
		zap.String("company", record.CompanyName),
		zap.String("title", record.JobTitle),
		zap.String("status", record.Status),
		zap.String("email_id", record.EmailID))
	return true, nil
}

// ListApplications returns every tracked application.
func (s *TrackerService) ListApplications(ctx context.Context) ([]ApplicationRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return records, nil
}
