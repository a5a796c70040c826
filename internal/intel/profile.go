package intel

import (
	"time"

	"github.com/leadscout/leadgen-cli/internal/model"
)

// BuildProfile distills a raw research report into a structured company
// profile. Markdown-sensitive extractors (website, competitors, news,
// leadership) run over the raw text; the rest run over the normalized
// plain text so markdown artifacts cannot leak into fields.
func (l *Lexicon) BuildProfile(report *model.ResearchReport, now time.Time) *model.CompanyProfileRecord {
	companyName := report.Meta.CompanyName
	raw := report.RawText()
	clean := Normalize(raw)

	rec := &model.CompanyProfileRecord{
		Meta: model.NewMeta(companyName, now),
		CompanyProfile: model.CompanyProfile{
			CompanyName: companyName,
			Website:     l.FindWebsite(raw, companyName),
			Industry:    ExtractSentenceContaining(clean, l.IndustryKeywords),
			Tagline:     ExtractSentenceContaining(clean, l.TaglineKeywords),
		},
		LeadershipTeam: l.FindLeadership(raw),
		Competitors:    l.FindCompetitors(raw, companyName),
		News:           l.FindNews(raw, companyName),
		Financials:     ExtractFinancials(clean),
		Locations:      l.ExtractLocations(clean),
		ContactInformation: model.ContactInfo{
			Emails:       ExtractEmails(clean),
			PhoneNumbers: ExtractPhones(clean),
		},
	}
	return rec
}
