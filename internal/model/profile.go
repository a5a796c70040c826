// Package model defines the records exchanged between the research,
// extraction, scoring, and sync stages.
package model

import "time"

// Meta identifies a research or profile record.
type Meta struct {
	CompanyName string `json:"company_name"`
	GeneratedAt string `json:"generated_at"`
	Status      string `json:"status"`
}

// SourceFragment is one raw document returned by the research search.
// Content carries the snippet text, RawContent the full page dump when
// the search provider returned one.
type SourceFragment struct {
	Title      string `json:"title,omitempty"`
	URL        string `json:"url,omitempty"`
	Content    string `json:"content"`
	RawContent string `json:"raw_content"`
}

// VerifiedSource is a news/update result that passed the company-name
// relevance filter at the collaborator boundary.
type VerifiedSource struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Snippet      string `json:"snippet"`
	SourceDomain string `json:"source_domain"`
}

// ResearchReport is the unstructured per-company report produced by the
// research stage and consumed by the extraction stage.
type ResearchReport struct {
	Meta                  Meta             `json:"meta"`
	FinancialIntelligence []SourceFragment `json:"financial_intelligence"`
	MarketUpdates         []VerifiedSource `json:"market_updates"`
}

// RawText concatenates all fragment content newline-joined, the form the
// extractors consume.
func (r *ResearchReport) RawText() string {
	var out string
	for _, f := range r.FinancialIntelligence {
		out += "\n" + f.Content
		out += "\n" + f.RawContent
	}
	return out
}

// CompanyProfile holds the identity fields of an extracted profile.
// Website, when set, is a bare scheme+domain with no path.
type CompanyProfile struct {
	CompanyName string `json:"company_name"`
	Website     string `json:"website,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Tagline     string `json:"tagline,omitempty"`
}

// LeadershipRecord is one (name, role) pair.
type LeadershipRecord struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Leadership partitions leadership records into three disjoint buckets.
// A (name, role) pair appears at most once across all buckets; the same
// person under two role phrasings yields two records.
type Leadership struct {
	Founders     []LeadershipRecord `json:"founders"`
	BoardMembers []LeadershipRecord `json:"board_members"`
	KeyPeople    []LeadershipRecord `json:"key_people"`
}

// NewsItem is one parsed news entry.
type NewsItem struct {
	Title            string   `json:"title"`
	URL              string   `json:"url"`
	Source           string   `json:"source"`
	Date             string   `json:"date"`
	RelatedCompanies []string `json:"related_companies"`
}

// FinancialFacts is a sparse mapping: absent fields mean "not found",
// never zero.
type FinancialFacts struct {
	EstimatedRevenueUSD string `json:"estimated_revenue_usd,omitempty"`
	Employees           *int   `json:"employees,omitempty"`
}

// ContactInfo holds extracted contact details, each sorted and deduplicated.
type ContactInfo struct {
	Emails       []string `json:"emails"`
	PhoneNumbers []string `json:"phone_numbers"`
}

// LeadScoring is injected into a stored profile after the scoring pass.
type LeadScoring struct {
	LeadScore    float64 `json:"lead_score"`
	RankBreakout string  `json:"rank_breakout"`
}

// CompanyProfileRecord is the persisted structured record, one per
// company, keyed by company name. Immutable after creation; a re-run
// overwrites the stored record.
type CompanyProfileRecord struct {
	Meta               Meta           `json:"meta"`
	CompanyProfile     CompanyProfile `json:"company_profile"`
	LeadershipTeam     Leadership     `json:"leadership_team"`
	Competitors        []string       `json:"competitors"`
	News               []NewsItem     `json:"news"`
	Financials         FinancialFacts `json:"financials"`
	Locations          []string       `json:"locations"`
	ContactInformation ContactInfo    `json:"contact_information"`
	LeadScoring        *LeadScoring   `json:"lead_scoring,omitempty"`
}

// FinancialEstimate is the estimate-service result for one company.
// NotFound is the literal sentinel the service returns for missing data;
// the value normalizer treats it as null.
type FinancialEstimate struct {
	AnnualRevenue      string `json:"Annual Revenue"`
	TotalEmployeeCount any    `json:"Total Employee Count"`
}

// NotFound is the estimate-service sentinel for an absent value.
const NotFound = "Not Found"

// NewMeta stamps a Meta for the given company at now.
func NewMeta(companyName string, now time.Time) Meta {
	return Meta{
		CompanyName: companyName,
		GeneratedAt: now.Format("2006-01-02 15:04:05"),
		Status:      "Success",
	}
}
