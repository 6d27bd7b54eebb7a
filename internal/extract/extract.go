// Package extract turns raw Gmail API messages into structured email
// content suitable for classification and display.
package extract

import (
	"strings"

	"google.golang.org/api/gmail/v1"

	"github.com/syncapply/syncapply/internal/core"
)

// inlineImageThreshold separates inline images from small image
// attachments: image parts above this many bytes are treated as inline.
const inlineImageThreshold = 5000

// maxPartDepth caps the MIME tree walk. Real messages nest a handful of
// levels; anything deeper is malformed or adversarial and gets ignored.
const maxPartDepth = 100

// usefulHeaders is the closed set of headers kept on an ExtractedEmail.
var usefulHeaders = []string{"From", "To", "Cc", "Bcc", "Subject", "Date", "Reply-To"}

// accumulator collects body text and named parts during the tree walk.
type accumulator struct {
	bodyPlain    string
	bodyHTML     string
	attachments  []core.Attachment
	inlineImages []core.Attachment
}

// Extract pulls the useful content out of a full-format Gmail message:
// headers of interest, the plain and HTML bodies, and the named parts
// partitioned into attachments and inline images. Missing fields degrade
// to empty values; Extract never fails.
func Extract(msg *gmail.Message) *core.ExtractedEmail {
	email := &core.ExtractedEmail{
		Labels:       []string{},
		Headers:      map[string]string{},
		Attachments:  []core.Attachment{},
		InlineImages: []core.Attachment{},
	}
	if msg == nil {
		return email
	}

	email.ID = msg.Id
	email.ThreadID = msg.ThreadId
	email.Snippet = msg.Snippet
	email.Labels = append(email.Labels, msg.LabelIds...)

	acc := &accumulator{}
	if msg.Payload != nil {
		// Headers live on the top-level payload only; nested part headers
		// are not scanned. Last occurrence of a repeated name wins.
		for _, h := range msg.Payload.Headers {
			if h == nil {
				continue
			}
			for _, name := range usefulHeaders {
				if h.Name == name {
					email.Headers[h.Name] = h.Value
					break
				}
			}
		}
		walkParts(msg.Payload, acc)
	}

	email.BodyPlain = acc.bodyPlain
	email.BodyHTML = acc.bodyHTML
	email.Attachments = append(email.Attachments, acc.attachments...)
	email.InlineImages = append(email.InlineImages, acc.inlineImages...)

	// Prefer plain text, fall back to converted HTML, then the snippet.
	switch {
	case email.BodyPlain != "":
		email.BodyText = email.BodyPlain
	case email.BodyHTML != "":
		email.BodyText = HTMLToText(email.BodyHTML)
	default:
		email.BodyText = email.Snippet
	}

	return email
}

type stackItem struct {
	part  *gmail.MessagePart
	depth int
}

// walkParts visits every node of the part tree in pre-order, root payload
// included. An explicit stack with a depth cap avoids blowing the call
// stack on pathologically nested payloads.
func walkParts(root *gmail.MessagePart, acc *accumulator) {
	stack := []stackItem{{part: root}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if item.part == nil {
			continue
		}

		visitPart(item.part, acc)

		if item.depth >= maxPartDepth {
			continue
		}
		// A part can carry its own data and children at once, so recursion
		// does not depend on the visit outcome. Children are pushed in
		// reverse to preserve their original order.
		for i := len(item.part.Parts) - 1; i >= 0; i-- {
			stack = append(stack, stackItem{part: item.part.Parts[i], depth: item.depth + 1})
		}
	}
}

func visitPart(part *gmail.MessagePart, acc *accumulator) {
	var size int64
	var data, attachmentID string
	if part.Body != nil {
		size = part.Body.Size
		data = part.Body.Data
		attachmentID = part.Body.AttachmentId
	}

	// A filename marks the part as an attachment or inline image; it is
	// never body text, even when it carries inline data.
	if part.Filename != "" {
		info := core.Attachment{
			Filename:     part.Filename,
			MimeType:     part.MimeType,
			Size:         size,
			AttachmentID: attachmentID,
		}
		if strings.HasPrefix(part.MimeType, "image/") && size > inlineImageThreshold {
			acc.inlineImages = append(acc.inlineImages, info)
		} else {
			acc.attachments = append(acc.attachments, info)
		}
		return
	}

	if data == "" {
		return
	}
	decoded := DecodeBase64URL(data)
	switch part.MimeType {
	case "text/plain":
		acc.bodyPlain = decoded
	case "text/html":
		acc.bodyHTML = decoded
	}
}
