package extract

import (
	"html"
	"regexp"
	"strings"
)

var (
	styleBlockRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptBlockRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	blankLinesRe  = regexp.MustCompile(`\n\s*\n`)
)

// HTMLToText converts an HTML email body to readable plain text. Many
// emails are HTML-only; this strips style and script blocks, replaces the
// remaining tags with spaces, decodes entities and collapses whitespace.
// It is pure and total: any input produces a (possibly empty) string.
func HTMLToText(htmlContent string) string {
	text := styleBlockRe.ReplaceAllString(htmlContent, "")
	text = scriptBlockRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
