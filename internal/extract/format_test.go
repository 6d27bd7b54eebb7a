package extract

import (
	"strings"
	"testing"

	"github.com/syncapply/syncapply/internal/core"
)

func TestFormatFullEmail(t *testing.T) {
	email := &core.ExtractedEmail{
		ID:     "m1",
		Labels: []string{"INBOX", "IMPORTANT"},
		Headers: map[string]string{
			"From":    "hr@acme.example",
			"To":      "me@example.com",
			"Date":    "Mon, 2 Jun 2025 10:00:00 +0000",
			"Subject": "Your application",
		},
		BodyText: "Thanks for applying to Acme.",
		Attachments: []core.Attachment{
			{Filename: "offer.pdf", MimeType: "application/pdf", Size: 2048},
		},
		InlineImages: []core.Attachment{
			{Filename: "logo.png", MimeType: "image/png", Size: 10240},
		},
	}

	rule := strings.Repeat("=", 50)
	want := strings.Join([]string{
		rule,
		"EMAIL CONTENT",
		rule,
		"",
		"--- METADATA ---",
		"From: hr@acme.example",
		"To: me@example.com",
		"Date: Mon, 2 Jun 2025 10:00:00 +0000",
		"Subject: Your application",
		"Labels: INBOX, IMPORTANT",
		"",
		"--- BODY ---",
		"Thanks for applying to Acme.",
		"",
		"--- ATTACHMENTS ---",
		"- offer.pdf (application/pdf, 2.0 KB)",
		"",
		"--- IMAGES ---",
		"- logo.png (image/png, 10.0 KB)",
		"",
		rule,
	}, "\n")

	got := Format(email)
	if got != want {
		t.Fatalf("Format mismatch:\n got:\n%s\n\nwant:\n%s", got, want)
	}
}

func TestFormatEmptyEmail(t *testing.T) {
	email := &core.ExtractedEmail{
		Headers: map[string]string{},
	}
	got := Format(email)

	if !strings.Contains(got, "(No body content)") {
		t.Errorf("missing no-body placeholder:\n%s", got)
	}
	if strings.Contains(got, "--- ATTACHMENTS ---") {
		t.Errorf("attachments section must be omitted when empty")
	}
	if strings.Contains(got, "--- IMAGES ---") {
		t.Errorf("images section must be omitted when empty")
	}
	if !strings.Contains(got, "Labels: \n") {
		t.Errorf("labels line must be present even when empty:\n%s", got)
	}
}

func TestFormatSkipsAbsentHeaders(t *testing.T) {
	email := &core.ExtractedEmail{
		Headers:  map[string]string{"From": "a@b.example"},
		BodyText: "body",
	}
	got := Format(email)
	if strings.Contains(got, "Subject:") {
		t.Errorf("absent headers must not render:\n%s", got)
	}
	if !strings.Contains(got, "From: a@b.example") {
		t.Errorf("present headers must render:\n%s", got)
	}
}
