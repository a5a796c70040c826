// Package intel turns raw aggregated company text into a structured
// profile. All extractors are pure functions over their input text and
// never fail on malformed input — absence is an empty result.
package intel

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var lexiconYAML []byte

// IntentRule maps a detected keyword group to a hiring-intent label.
type IntentRule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Lexicon holds the static word lists the extractors match against.
// Built once at startup from the embedded lexicon; treat as immutable.
type Lexicon struct {
	LegalWords       []string     `yaml:"legal_words"`
	BadDomains       []string     `yaml:"bad_domains"`
	WebsiteTLDs      []string     `yaml:"website_tlds"`
	NoiseTokens      []string     `yaml:"noise_tokens"`
	Gazetteer        []string     `yaml:"gazetteer"`
	RoleKeywords     []string     `yaml:"role_keywords"`
	IndustryKeywords []string     `yaml:"industry_keywords"`
	TaglineKeywords  []string     `yaml:"tagline_keywords"`
	IntentRules      []IntentRule `yaml:"intent_rules"`
	DefaultIntent    string       `yaml:"default_intent"`

	legalWordSet map[string]struct{}
	domainRe     *regexp.Regexp
	roleRe       *regexp.Regexp
}

// LoadLexicon parses the embedded lexicon and precompiles its patterns.
func LoadLexicon() (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(lexiconYAML, &lex); err != nil {
		return nil, eris.Wrap(err, "intel: parse lexicon")
	}
	if err := lex.compile(); err != nil {
		return nil, err
	}
	return &lex, nil
}

// MustLexicon is LoadLexicon for process startup, where a broken embedded
// lexicon is a build defect.
func MustLexicon() *Lexicon {
	lex, err := LoadLexicon()
	if err != nil {
		panic(err)
	}
	return lex
}

func (l *Lexicon) compile() error {
	l.legalWordSet = make(map[string]struct{}, len(l.LegalWords))
	for _, w := range l.LegalWords {
		l.legalWordSet[w] = struct{}{}
	}

	domainExpr := `\b(?:https?://|www\.)?([a-zA-Z0-9-]+\.(?:` + strings.Join(l.WebsiteTLDs, "|") + `))\b`
	re, err := regexp.Compile(domainExpr)
	if err != nil {
		return eris.Wrap(err, "intel: compile domain pattern")
	}
	l.domainRe = re

	roleExpr := `(?i)(` + strings.Join(l.RoleKeywords, "|") + `)`
	re, err = regexp.Compile(roleExpr)
	if err != nil {
		return eris.Wrap(err, "intel: compile role pattern")
	}
	l.roleRe = re

	return nil
}

func (l *Lexicon) isLegalWord(w string) bool {
	_, ok := l.legalWordSet[w]
	return ok
}

func (l *Lexicon) isBadDomain(domain string) bool {
	for _, bad := range l.BadDomains {
		if strings.Contains(domain, bad) {
			return true
		}
	}
	return false
}
