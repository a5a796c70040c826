package intel

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/leadscout/leadgen-cli/internal/model"
)

var (
	revenueRe   = regexp.MustCompile(`(?i)\$([\d.]+)\s*(M|B)`)
	employeesRe = regexp.MustCompile(`(?i)Employees?\s*[:\-]?\s*([\d,]+)`)
	emailRe     = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe     = regexp.MustCompile(`(?:\+?\d{1,3}[\s\-]?)?(?:\(?\d{2,4}\)?[\s\-]?)?\d{3,4}[\s\-]?\d{3,4}`)
	nonDigitRe  = regexp.MustCompile(`\D`)
)

// ExtractFinancials scans for a dollar figure with an M/B suffix and an
// employee count. Absent keys mean "not found", not zero.
func ExtractFinancials(text string) model.FinancialFacts {
	facts := model.FinancialFacts{}

	if m := revenueRe.FindStringSubmatch(text); m != nil {
		facts.EstimatedRevenueUSD = "$" + m[1] + strings.ToUpper(m[2])
	}

	if m := employeesRe.FindStringSubmatch(text); m != nil {
		if n, err := parseEmployeeCount(m[1]); err == nil {
			facts.Employees = &n
		}
	}
	return facts
}

// parseEmployeeCount parses a comma-grouped integer. Separated from
// ExtractFinancials so malformed input is distinguishable from absent
// input in tests; the boundary collapses both to an omitted field.
func parseEmployeeCount(raw string) (int, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return 0, eris.New("intel: empty employee count")
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, eris.Wrapf(err, "intel: parse employee count %q", raw)
	}
	return n, nil
}

// ExtractLocations returns the sorted subset of gazetteer entries that
// appear as case-insensitive substrings of the text.
func (l *Lexicon) ExtractLocations(text string) []string {
	lower := strings.ToLower(text)
	out := []string{}
	for _, loc := range l.Gazetteer {
		if strings.Contains(lower, strings.ToLower(loc)) {
			out = append(out, loc)
		}
	}
	sort.Strings(out)
	return out
}

// ExtractEmails returns all email-like substrings, deduplicated and sorted.
func ExtractEmails(text string) []string {
	return dedupeSorted(emailRe.FindAllString(text, -1))
}

// ExtractPhones returns digit-grouped phone candidates whose digit-only
// length is between 8 and 15 inclusive, deduplicated and sorted.
func ExtractPhones(text string) []string {
	var kept []string
	for _, m := range phoneRe.FindAllString(text, -1) {
		digits := nonDigitRe.ReplaceAllString(m, "")
		if len(digits) >= 8 && len(digits) <= 15 {
			kept = append(kept, strings.TrimSpace(m))
		}
	}
	return dedupeSorted(kept)
}

// dedupeSorted always returns a non-nil slice so empty collections
// serialize as [] rather than null.
func dedupeSorted(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	set := make(map[string]struct{}, len(in))
	for _, s := range in {
		set[s] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
