package core

// Attachment describes a named MIME part of a message.
type Attachment struct {
	Filename     string `json:"filename"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	AttachmentID string `json:"attachment_id"`
}

// ExtractedEmail is the structured content of a single Gmail message.
// It is built once per fetch and never mutated afterwards. Absent fields
// are empty strings, slices or maps, never nil-with-meaning.
type ExtractedEmail struct {
	ID       string
	ThreadID string
	Labels   []string
	Snippet  string

	// Headers holds only the closed set of headers useful for tracking:
	// From, To, Cc, Bcc, Subject, Date, Reply-To.
	Headers map[string]string

	// BodyText is the best available textual body: BodyPlain when
	// non-empty, otherwise the HTML body converted to plain text,
	// otherwise the snippet.
	BodyText  string
	BodyPlain string
	BodyHTML  string

	Attachments  []Attachment
	InlineImages []Attachment
}

// ClassificationResult is the verdict of the language model for one email.
type ClassificationResult struct {
	IsJobApplication bool   `json:"is_job_application"`
	Reasoning        string `json:"reasoning"`

	// Extracted fields; empty unless IsJobApplication is true.
	CompanyName string `json:"company_name"`
	JobTitle    string `json:"job_title"`
	Status      string `json:"status"`

	// EmailRef is a reference number the model found in the email body.
	// It is NOT the Gmail message id and is never used for dedup.
	EmailRef string `json:"email_id"`

	// Err carries the call-level failure text when the model could not be
	// reached or its output could not be used. Empty on the happy paths.
	Err string `json:"error,omitempty"`
}

// KnownStatuses are the status values the classifier prompt steers the
// model towards. Other values are persisted as-is.
var KnownStatuses = []string{"applied", "interview", "offer", "rejected", "pending"}

// ApplicationRecord is one persisted job application row.
type ApplicationRecord struct {
	CompanyName string `json:"company_name"`
	JobTitle    string `json:"job_title"`
	Status      string `json:"status"`

	// EmailID is the Gmail message id the record was derived from. It is
	// the dedup key and carries a uniqueness constraint in every store.
	EmailID string `json:"email_id"`
}
