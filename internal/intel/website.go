package intel

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// websiteThreshold is the minimum similarity between brand keyword and
// domain label for a candidate to be accepted.
const websiteThreshold = 0.45

var nonLetterSpaceRe = regexp.MustCompile(`[^a-zA-Z ]`)

// foldDiacritics maps accented letters to their ASCII base so company
// names like "Café Zürich GmbH" compare against plain-ASCII domains.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// BrandKeyword derives the legal-suffix-stripped core token of a company
// name: lowercase, diacritics folded, non-letters dropped, legal/generic
// business words removed, remaining words concatenated. If nothing
// survives the stoplist, all words are used.
func (l *Lexicon) BrandKeyword(companyName string) string {
	folded, _, err := transform.String(foldDiacritics, companyName)
	if err != nil {
		folded = companyName
	}
	clean := nonLetterSpaceRe.ReplaceAllString(strings.ToLower(folded), "")
	words := strings.Fields(clean)

	var core []string
	for _, w := range words {
		if !l.isLegalWord(w) {
			core = append(core, w)
		}
	}
	if len(core) == 0 {
		core = words
	}
	return strings.Join(core, "")
}

// FindWebsite scans text for domain-like tokens, filters directory and
// social noise domains, and returns the candidate whose label is most
// similar to the company's brand keyword as an https URL. Returns ""
// when no candidate clears the similarity threshold.
func (l *Lexicon) FindWebsite(text, companyName string) string {
	if text == "" || companyName == "" {
		return ""
	}

	brand := l.BrandKeyword(companyName)
	params := levenshtein.NewParams()

	bestDomain := ""
	bestScore := 0.0
	for _, m := range l.domainRe.FindAllStringSubmatch(strings.ToLower(text), -1) {
		domain := m[1]
		if l.isBadDomain(domain) {
			continue
		}
		label := domain
		if i := strings.Index(domain, "."); i >= 0 {
			label = domain[:i]
		}
		score := levenshtein.Similarity(brand, label, params)
		// Strictly-greater keeps the first candidate on ties.
		if score > bestScore {
			bestScore = score
			bestDomain = domain
		}
	}

	if bestDomain != "" && bestScore > websiteThreshold {
		return "https://" + bestDomain
	}
	return ""
}
