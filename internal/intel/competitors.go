package intel

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// Enumerated-block style: "Top competitor(s) of X include A, B and C."
	// The block ends at a period, a newline, or the phrase "Here is".
	enumBlockRe = regexp.MustCompile(`(?i)Top competitors? of .*? include(.*?)(?:\.|\n|Here is)`)

	// Markdown-link display texts inside a competitor block.
	blockLinkRe = regexp.MustCompile(`\[([A-Za-z0-9&.\- ]{2,50})\]\(`)

	// Plain-text enumeration separators within a block.
	enumSplitRe = regexp.MustCompile(`,| and `)

	// Labeled-list style: "Competitors: A, B, C". Colon/dash optional;
	// prose captures are absorbed by the token-count post-filter.
	labeledListRe = regexp.MustCompile(`(?i)Competitors\s*[:\-]?\s*(.*)`)

	// Post-filter: strip everything but letters, digits, &, ., -, space.
	competitorCharRe = regexp.MustCompile(`[^A-Za-z0-9&.\- ]`)
)

// maxCompetitorTokens rejects candidates that are sentences, not names.
const maxCompetitorTokens = 6

// FindCompetitors extracts competitor names from enumerated blocks and
// labeled lists, excluding the subject company and noise entries.
// Result is deduplicated and lexicographically sorted.
func (l *Lexicon) FindCompetitors(text, companyName string) []string {
	candidates := make(map[string]struct{})
	flat := strings.ReplaceAll(text, "\n", " ")

	if m := enumBlockRe.FindStringSubmatch(flat); m != nil {
		block := m[1]
		for _, link := range blockLinkRe.FindAllStringSubmatch(block, -1) {
			candidates[link[1]] = struct{}{}
		}
		for _, part := range enumSplitRe.Split(block, -1) {
			p := Normalize(part)
			if len(p) >= 2 && len(p) <= 50 {
				candidates[p] = struct{}{}
			}
		}
	}

	for _, line := range strings.Split(text, "\n") {
		m := labeledListRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for _, c := range strings.Split(m[1], ",") {
			name := strings.TrimSpace(c)
			if len(name) >= 2 && len(name) <= 50 {
				candidates[name] = struct{}{}
			}
		}
	}

	cleaned := make(map[string]struct{})
	for c := range candidates {
		name := strings.TrimSpace(competitorCharRe.ReplaceAllString(c, ""))
		if name == "" || strings.EqualFold(name, companyName) {
			continue
		}
		if len(strings.Fields(name)) > maxCompetitorTokens {
			continue
		}
		if l.hasNoiseToken(name) {
			continue
		}
		cleaned[name] = struct{}{}
	}

	out := make([]string, 0, len(cleaned))
	for c := range cleaned {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (l *Lexicon) hasNoiseToken(name string) bool {
	lower := strings.ToLower(name)
	for _, tok := range l.NoiseTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}
