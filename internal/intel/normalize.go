package intel

import (
	"regexp"
	"strings"
)

var (
	imageMarkdownRe = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkMarkdownRe  = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	rawURLRe        = regexp.MustCompile(`https?://\S+`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	sentenceSplitRe = regexp.MustCompile(`[.\n]`)
)

// Normalize strips markdown image/link syntax and raw URLs from free
// text and collapses whitespace runs to single spaces. Idempotent; empty
// input yields the empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = imageMarkdownRe.ReplaceAllString(text, " ")
	text = linkMarkdownRe.ReplaceAllString(text, "$1")
	text = rawURLRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// NormalizeKeepLinks strips images and raw URLs but leaves link display
// text untouched where link markdown has already been collapsed. Used
// where markdown link text must survive (competitor/news scanning works
// on the raw text instead).
func NormalizeKeepLinks(text string) string {
	if text == "" {
		return ""
	}
	text = imageMarkdownRe.ReplaceAllString(text, " ")
	text = rawURLRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// ExtractSentenceContaining returns the first sentence (split on periods
// and newlines) containing any of the keywords, case-insensitive.
// Returns "" when no sentence matches.
func ExtractSentenceContaining(text string, keywords []string) string {
	for _, s := range sentenceSplitRe.Split(text, -1) {
		lower := strings.ToLower(s)
		for _, k := range keywords {
			if strings.Contains(lower, strings.ToLower(k)) {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
