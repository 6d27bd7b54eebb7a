package core

import (
	"context"
	"errors"
)

var (
	// ErrDuplicateApplication is returned by ApplicationRepository.Insert
	// when a row for the same email id already exists. Store adapters map
	// their driver's duplicate-key error to this sentinel.
	ErrDuplicateApplication = errors.New("application already tracked")

	// ErrUnparseableResponse is returned by LLM clients when the model
	// output contains no usable JSON object.
	ErrUnparseableResponse = errors.New("unparseable LLM response")

	// ErrNoMessages is returned by mail sources when a query matches nothing.
	ErrNoMessages = errors.New("no messages match query")
)

// LLMClient classifies email text with a language model.
type LLMClient interface {
	// Classify sends the email text to the model and returns its verdict.
	Classify(ctx context.Context, emailText string) (*ClassificationResult, error)
}

// ApplicationRepository persists application records keyed by email id.
// Implementations MUST enforce a uniqueness constraint on the email id and
// surface insert conflicts as ErrDuplicateApplication; the tracker's
// check-then-insert is only race-safe because of it.
type ApplicationRepository interface {
	// GetByEmailID returns the record for an email id, or nil when absent.
	GetByEmailID(ctx context.Context, emailID string) (*ApplicationRecord, error)

	// Insert stores a new record.
	Insert(ctx context.Context, record *ApplicationRecord) error

	// List returns all records, unordered.
	List(ctx context.Context) ([]ApplicationRecord, error)
}

// MessageRef identifies one message in a mail source listing.
type MessageRef struct {
	ID       string
	ThreadID string
}

// MailSource reads messages from the mail provider on behalf of one user.
type MailSource interface {
	// List returns refs for messages matching a provider search query.
	List(ctx context.Context, query string, maxResults int64) ([]MessageRef, error)

	// Fetch retrieves one message in full detail and extracts its content.
	Fetch(ctx context.Context, id string) (*ExtractedEmail, error)
}

// MailSourceFactory builds a MailSource bound to a caller's access token.
type MailSourceFactory func(ctx context.Context, accessToken string) (MailSource, error)

// EmailSink receives the formatted text of emails about to be classified.
// Used for debugging; failures are logged, never propagated.
type EmailSink interface {
	Write(formatted string) error
}

// EmailFormatter renders an extracted email into the text block the
// classifier consumes.
type EmailFormatter func(email *ExtractedEmail) string
