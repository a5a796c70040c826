package intel

import (
	"regexp"
	"strings"

	"github.com/leadscout/leadgen-cli/internal/model"
)

// personNameRe matches the first run of 2-4 consecutive capitalized words.
var personNameRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3})\b`)

// FindLeadership scans text line by line for role keywords and partitions
// the (name, role) pairs into founders, board members, and key people.
// Pairs are deduplicated case-insensitively; the same person under two
// role phrasings yields two independent records.
func (l *Lexicon) FindLeadership(text string) model.Leadership {
	leadership := model.Leadership{
		Founders:     []model.LeadershipRecord{},
		BoardMembers: []model.LeadershipRecord{},
		KeyPeople:    []model.LeadershipRecord{},
	}
	seen := make(map[string]struct{})

	for _, line := range strings.Split(text, "\n") {
		clean := Normalize(line)
		roleLoc := l.roleRe.FindStringIndex(clean)
		if roleLoc == nil {
			continue
		}

		nameMatch := personNameRe.FindStringSubmatch(clean)
		if nameMatch == nil {
			continue
		}
		name := nameMatch[1]

		// Role text runs from the matched keyword to the first period.
		roleText := clean[roleLoc[0]:]
		if i := strings.Index(roleText, "."); i >= 0 {
			roleText = roleText[:i]
		}
		roleText = strings.TrimSpace(roleText)

		key := strings.ToLower(name) + "|" + strings.ToLower(roleText)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		rec := model.LeadershipRecord{Name: name, Role: roleText}
		lowerRole := strings.ToLower(roleText)
		switch {
		case strings.Contains(lowerRole, "founder"):
			leadership.Founders = append(leadership.Founders, rec)
		case strings.Contains(lowerRole, "board") || strings.Contains(lowerRole, "director"):
			leadership.BoardMembers = append(leadership.BoardMembers, rec)
		default:
			leadership.KeyPeople = append(leadership.KeyPeople, rec)
		}
	}
	return leadership
}
