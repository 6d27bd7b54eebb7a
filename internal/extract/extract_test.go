package extract

import (
	"encoding/base64"
	"strings"
	"testing"

	"google.golang.org/api/gmail/v1"
)

func b64(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestExtractSimpleMessage(t *testing.T) {
	msg := &gmail.Message{
		Id:       "m1",
		ThreadId: "t1",
		Snippet:  "Hello...",
		LabelIds: []string{"INBOX", "UNREAD"},
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Headers: []*gmail.MessagePartHeader{
				{Name: "Subject", Value: "Hi"},
				{Name: "From", Value: "alice@example.com"},
				{Name: "X-Mailer", Value: "should be dropped"},
			},
			Body: &gmail.MessagePartBody{Data: b64("Hello"), Size: 5},
		},
	}

	email := Extract(msg)

	if email.ID != "m1" || email.ThreadID != "t1" {
		t.Fatalf("ids = %q/%q, want m1/t1", email.ID, email.ThreadID)
	}
	if email.Headers["Subject"] != "Hi" {
		t.Errorf("Subject = %q, want Hi", email.Headers["Subject"])
	}
	if email.Headers["From"] != "alice@example.com" {
		t.Errorf("From = %q", email.Headers["From"])
	}
	if _, ok := email.Headers["X-Mailer"]; ok {
		t.Errorf("X-Mailer should not be kept")
	}
	if email.BodyPlain != "Hello" {
		t.Errorf("BodyPlain = %q, want Hello", email.BodyPlain)
	}
	if email.BodyText != "Hello" {
		t.Errorf("BodyText = %q, want Hello", email.BodyText)
	}
	if len(email.Attachments) != 0 || len(email.InlineImages) != 0 {
		t.Errorf("unexpected named parts: %v %v", email.Attachments, email.InlineImages)
	}
}

func TestExtractNilMessage(t *testing.T) {
	email := Extract(nil)
	if email == nil {
		t.Fatal("Extract(nil) returned nil")
	}
	if email.Headers == nil || email.Labels == nil || email.Attachments == nil || email.InlineImages == nil {
		t.Fatalf("collections must be non-nil: %+v", email)
	}
	if email.BodyText != "" {
		t.Fatalf("BodyText = %q, want empty", email.BodyText)
	}
}

func TestExtractRepeatedHeaderLastWins(t *testing.T) {
	msg := &gmail.Message{
		Id: "m1",
		Payload: &gmail.MessagePart{
			Headers: []*gmail.MessagePartHeader{
				{Name: "Subject", Value: "first"},
				{Name: "Subject", Value: "second"},
			},
		},
	}
	email := Extract(msg)
	if email.Headers["Subject"] != "second" {
		t.Fatalf("Subject = %q, want second", email.Headers["Subject"])
	}
}

func TestExtractMultipartBodies(t *testing.T) {
	msg := &gmail.Message{
		Id: "m1",
		Payload: &gmail.MessagePart{
			MimeType: "multipart/alternative",
			Parts: []*gmail.MessagePart{
				{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64("plain body")}},
				{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: b64("<p>html body</p>")}},
			},
		},
	}
	email := Extract(msg)
	if email.BodyPlain != "plain body" {
		t.Errorf("BodyPlain = %q", email.BodyPlain)
	}
	if email.BodyHTML != "<p>html body</p>" {
		t.Errorf("BodyHTML = %q", email.BodyHTML)
	}
	if email.BodyText != "plain body" {
		t.Errorf("BodyText = %q, want the plain body preferred", email.BodyText)
	}
}

func TestExtractHTMLOnlyFallsBackToConvertedHTML(t *testing.T) {
	msg := &gmail.Message{
		Id:      "m1",
		Snippet: "snippet text",
		Payload: &gmail.MessagePart{
			MimeType: "text/html",
			Body:     &gmail.MessagePartBody{Data: b64("<p>Only <b>HTML</b> here</p>")},
		},
	}
	email := Extract(msg)
	if email.BodyText != "Only HTML here" {
		t.Fatalf("BodyText = %q, want converted HTML", email.BodyText)
	}
}

func TestExtractNoBodyFallsBackToSnippet(t *testing.T) {
	msg := &gmail.Message{
		Id:      "m1",
		Snippet: "snippet text",
		Payload: &gmail.MessagePart{MimeType: "multipart/mixed"},
	}
	email := Extract(msg)
	if email.BodyText != "snippet text" {
		t.Fatalf("BodyText = %q, want snippet", email.BodyText)
	}
}

func TestExtractLastTextPartWins(t *testing.T) {
	msg := &gmail.Message{
		Id: "m1",
		Payload: &gmail.MessagePart{
			MimeType: "multipart/mixed",
			Parts: []*gmail.MessagePart{
				{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64("first")}},
				{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64("second")}},
			},
		},
	}
	email := Extract(msg)
	if email.BodyPlain != "second" {
		t.Fatalf("BodyPlain = %q, want second", email.BodyPlain)
	}
}

func TestExtractNamedPartNeverBody(t *testing.T) {
	msg := &gmail.Message{
		Id: "m1",
		Payload: &gmail.MessagePart{
			MimeType: "multipart/mixed",
			Parts: []*gmail.MessagePart{
				{
					MimeType: "text/plain",
					Filename: "notes.txt",
					Body:     &gmail.MessagePartBody{Data: b64("attached text"), Size: 13},
				},
			},
		},
	}
	email := Extract(msg)
	if email.BodyPlain != "" {
		t.Errorf("named part leaked into BodyPlain: %q", email.BodyPlain)
	}
	if len(email.Attachments) != 1 || email.Attachments[0].Filename != "notes.txt" {
		t.Fatalf("Attachments = %+v", email.Attachments)
	}
}

func TestExtractAttachmentImagePartition(t *testing.T) {
	tests := []struct {
		name       string
		mimeType   string
		size       int64
		wantInline bool
	}{
		{name: "pdf", mimeType: "application/pdf", size: 90000, wantInline: false},
		{name: "large-image", mimeType: "image/png", size: 5001, wantInline: true},
		{name: "threshold-image", mimeType: "image/png", size: 5000, wantInline: false},
		{name: "small-image", mimeType: "image/gif", size: 120, wantInline: false},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			msg := &gmail.Message{
				Id: "m1",
				Payload: &gmail.MessagePart{
					MimeType: "multipart/mixed",
					Parts: []*gmail.MessagePart{
						{
							MimeType: tc.mimeType,
							Filename: "file.bin",
							Body:     &gmail.MessagePartBody{Size: tc.size, AttachmentId: "att-1"},
						},
					},
				},
			}
			email := Extract(msg)
			total := len(email.Attachments) + len(email.InlineImages)
			if total != 1 {
				t.Fatalf("named part counted %d times", total)
			}
			gotInline := len(email.InlineImages) == 1
			if gotInline != tc.wantInline {
				t.Fatalf("inline = %t, want %t", gotInline, tc.wantInline)
			}
		})
	}
}

func TestExtractDeeplyNestedParts(t *testing.T) {
	// Body sits a few levels down in nested multiparts.
	leaf := &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     &gmail.MessagePartBody{Data: b64("deep body")},
	}
	root := leaf
	for i := 0; i < 10; i++ {
		root = &gmail.MessagePart{MimeType: "multipart/mixed", Parts: []*gmail.MessagePart{root}}
	}
	email := Extract(&gmail.Message{Id: "m1", Payload: root})
	if email.BodyPlain != "deep body" {
		t.Fatalf("BodyPlain = %q, want deep body", email.BodyPlain)
	}
}

func TestExtractDepthCap(t *testing.T) {
	// A payload nested far past the cap must terminate and drop the
	// unreachable leaf rather than hang or overflow.
	leaf := &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     &gmail.MessagePartBody{Data: b64("too deep")},
	}
	root := leaf
	for i := 0; i < 500; i++ {
		root = &gmail.MessagePart{MimeType: "multipart/mixed", Parts: []*gmail.MessagePart{root}}
	}
	email := Extract(&gmail.Message{Id: "m1", Payload: root})
	if email.BodyPlain != "" {
		t.Fatalf("BodyPlain = %q, want empty past the depth cap", email.BodyPlain)
	}
}

func TestExtractMixedDataAndChildren(t *testing.T) {
	// A part carrying both inline data and children contributes both.
	msg := &gmail.Message{
		Id: "m1",
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Body:     &gmail.MessagePartBody{Data: b64("outer")},
			Parts: []*gmail.MessagePart{
				{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: b64("<i>inner</i>")}},
			},
		},
	}
	email := Extract(msg)
	if email.BodyPlain != "outer" {
		t.Errorf("BodyPlain = %q", email.BodyPlain)
	}
	if !strings.Contains(email.BodyHTML, "inner") {
		t.Errorf("BodyHTML = %q", email.BodyHTML)
	}
}
