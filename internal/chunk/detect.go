package chunk

import (
	"regexp"
	"strings"
)

// ContentType selects which splitting algorithm handles a text.
type ContentType string

const (
	// ContentTypeAuto resolves to text or markdown via [DetectContentType].
	ContentTypeAuto ContentType = "auto"

	// ContentTypeText selects plain line accumulation.
	ContentTypeText ContentType = "text"

	// ContentTypeMarkdown selects fence-aware line accumulation.
	ContentTypeMarkdown ContentType = "markdown"
)

var (
	headingPattern    = regexp.MustCompile(`(?m)^#{1,6}[ \t]`)
	inlineLinkPattern = regexp.MustCompile(`\[[^\]]*\]\([^)]+\)`)
)

// DetectContentType classifies a text as markdown when it contains a code
// fence, a heading line, or an inline link; everything else is plain text.
func DetectContentType(text string) ContentType {
	if strings.Contains(text, "```") || strings.Contains(text, "~~~") {
		return ContentTypeMarkdown
	}
	if headingPattern.MatchString(text) || inlineLinkPattern.MatchString(text) {
		return ContentTypeMarkdown
	}

	return ContentTypeText
}
