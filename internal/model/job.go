package model

import "sort"

// JobPosting is one job record from a job-board source.
type JobPosting struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Country     string `json:"country"`
	Type        string `json:"type"`
	Source      string `json:"source"`
	Posted      string `json:"posted"`
	ApplyLink   string `json:"apply_link,omitempty"`
	Description string `json:"description,omitempty"`
	CompanyURL  string `json:"company_url,omitempty"`
}

// CompanySignals aggregates the job postings of a single company into the
// hiring signals the lead scorer consumes.
type CompanySignals struct {
	Company      string   `json:"company"`
	Roles        []string `json:"roles"`
	OpenRoles    int      `json:"open_roles"`
	Locations    []string `json:"locations"`
	Countries    []string `json:"countries"`
	DetectedNeed string   `json:"detected_need"`
	Why          string   `json:"why"`
	Descriptions string   `json:"-"`
}

// AggregateSignals groups postings by company. Roles, locations, and
// countries are deduplicated and sorted so output is stable across runs.
func AggregateSignals(postings []JobPosting) []CompanySignals {
	byCompany := make(map[string]*CompanySignals)
	roleSets := make(map[string]map[string]struct{})
	locSets := make(map[string]map[string]struct{})
	countrySets := make(map[string]map[string]struct{})

	var order []string
	for _, p := range postings {
		company := p.Company
		if company == "" {
			company = "Unknown"
		}
		sig, ok := byCompany[company]
		if !ok {
			sig = &CompanySignals{Company: company}
			byCompany[company] = sig
			roleSets[company] = make(map[string]struct{})
			locSets[company] = make(map[string]struct{})
			countrySets[company] = make(map[string]struct{})
			order = append(order, company)
		}
		roleSets[company][p.Title] = struct{}{}
		if p.Location != "" {
			locSets[company][p.Location] = struct{}{}
		}
		if p.Country != "" {
			countrySets[company][p.Country] = struct{}{}
		}
		sig.Descriptions += " " + p.Description
	}

	sort.Strings(order)
	out := make([]CompanySignals, 0, len(order))
	for _, company := range order {
		sig := byCompany[company]
		sig.Roles = sortedKeys(roleSets[company])
		sig.OpenRoles = len(sig.Roles)
		sig.Locations = sortedKeys(locSets[company])
		sig.Countries = sortedKeys(countrySets[company])
		out = append(out, *sig)
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
