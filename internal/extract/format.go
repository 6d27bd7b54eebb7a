package extract

import (
	"fmt"
	"strings"

	"github.com/syncapply/syncapply/internal/core"
)

// metadataOrder fixes the header order in the formatted block.
var metadataOrder = []string{"From", "To", "Cc", "Date", "Subject"}

// Format renders an extracted email as a deterministic text block. The
// exact layout matters: this string is the literal classification payload,
// so any change here changes what the model sees.
func Format(email *core.ExtractedEmail) string {
	rule := strings.Repeat("=", 50)
	var lines []string

	lines = append(lines, rule, "EMAIL CONTENT", rule, "")

	lines = append(lines, "--- METADATA ---")
	for _, key := range metadataOrder {
		if value, ok := email.Headers[key]; ok {
			lines = append(lines, key+": "+value)
		}
	}
	lines = append(lines, "Labels: "+strings.Join(email.Labels, ", "), "")

	lines = append(lines, "--- BODY ---")
	if email.BodyText != "" {
		lines = append(lines, email.BodyText)
	} else {
		lines = append(lines, "(No body content)")
	}
	lines = append(lines, "")

	if len(email.Attachments) > 0 {
		lines = append(lines, "--- ATTACHMENTS ---")
		for _, att := range email.Attachments {
			lines = append(lines, formatPartLine(att))
		}
		lines = append(lines, "")
	}

	if len(email.InlineImages) > 0 {
		lines = append(lines, "--- IMAGES ---")
		for _, img := range email.InlineImages {
			lines = append(lines, formatPartLine(img))
		}
		lines = append(lines, "")
	}

	lines = append(lines, rule)
	return strings.Join(lines, "\n")
}

func formatPartLine(att core.Attachment) string {
	return fmt.Sprintf("- %s (%s, %.1f KB)", att.Filename, att.MimeType, float64(att.Size)/1024)
}
