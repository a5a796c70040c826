package intel

import (
	"regexp"
	"strings"

	"github.com/leadscout/leadgen-cli/internal/model"
)

var (
	// The news section opens with "News related to <company>" followed by a
	// dashed separator line and runs until a known footer phrase or EOF.
	newsSectionRe = regexp.MustCompile(`(?is)News related to .*?\n-+\n(.*?)(?:Get curated news|View complete company profile|$)`)

	// One entry: [Title](url) Source • Mon DD, YYYY • related segment.
	newsEntryRe = regexp.MustCompile(`(?i)\[([^\]]{10,200})\]\((https?://[^)]+)\)(?:\s*([A-Za-z ]+))?•\s*([A-Za-z]{3} \d{2}, \d{4})\s*•([^\n]+)`)

	relatedLinkRe = regexp.MustCompile(`\[([A-Za-z0-9&.\- ]+)\]\(`)
)

// FindNews parses the news block for a company. A missing block or zero
// matching entries yields an empty list, never an error.
func (l *Lexicon) FindNews(text, companyName string) []model.NewsItem {
	news := []model.NewsItem{}
	section := newsSectionRe.FindStringSubmatch(text)
	if section == nil {
		return news
	}

	for _, m := range newsEntryRe.FindAllStringSubmatch(section[1], -1) {
		source := strings.TrimSpace(m[3])
		if source == "" {
			source = "Unknown"
		}

		related := relatedCompanies(m[5])
		if len(related) == 0 {
			related = []string{companyName}
		}

		news = append(news, model.NewsItem{
			Title:            strings.TrimSpace(m[1]),
			URL:              strings.TrimSpace(m[2]),
			Source:           source,
			Date:             strings.TrimSpace(m[4]),
			RelatedCompanies: related,
		})
	}
	return news
}

// relatedCompanies pulls deduplicated link display texts from the
// trailing segment of a news entry, preserving encounter order.
func relatedCompanies(segment string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range relatedLinkRe.FindAllStringSubmatch(segment, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
