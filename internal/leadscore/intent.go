package leadscore

import (
	"strings"

	"github.com/leadscout/leadgen-cli/internal/intel"
)

// DetectNeed classifies free job-description text into a hiring-intent
// label using the lexicon's ordered keyword groups. The first group
// with a hit wins; no hit falls back to the lexicon default.
func DetectNeed(lex *intel.Lexicon, text string) string {
	t := strings.ToLower(text)
	for _, rule := range lex.IntentRules {
		for _, k := range rule.Keywords {
			if strings.Contains(t, strings.ToLower(k)) {
				return rule.Label
			}
		}
	}
	return lex.DefaultIntent
}
