package pipeline

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadscout/leadgen-cli/internal/model"
	"github.com/leadscout/leadgen-cli/pkg/jsearch"
	"github.com/leadscout/leadgen-cli/pkg/serpapi"
)

// Job search providers.
const (
	ProviderSerpAPI = "serpapi"
	ProviderJSearch = "jsearch"
)

// Source labels recorded on each posting.
const (
	sourceSerpAPI = "Google Jobs (SerpAPI)"
	sourceJSearch = "JSearch (Enhanced Google Jobs)"
)

// JobsParams configures one job search batch.
type JobsParams struct {
	Query          string
	Location       string
	Provider       string
	DatePosted     string
	EmploymentType string
	Limit          int
}

// Jobs runs a provider job search, deduplicates the results, and
// persists them as the latest batch for the scoring stage.
func (p *Pipeline) Jobs(ctx context.Context, params JobsParams) ([]model.JobPosting, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "pipeline: jobs cancelled")
	}

	var postings []model.JobPosting
	switch params.Provider {
	case ProviderJSearch:
		jobs, err := p.jsearch.SearchJobs(ctx, params.Query, params.Location, jsearch.Filters{
			DatePosted:     params.DatePosted,
			EmploymentType: params.EmploymentType,
		}, params.Limit)
		if err != nil {
			return nil, eris.Wrap(err, "pipeline: jsearch")
		}
		postings = fromJSearch(jobs)
	case ProviderSerpAPI, "":
		jobs, err := p.serpapi.SearchJobs(ctx, params.Query, params.Location, serpapi.Filters{
			DatePosted:     params.DatePosted,
			EmploymentType: params.EmploymentType,
		}, params.Limit)
		if err != nil {
			return nil, eris.Wrap(err, "pipeline: serpapi")
		}
		postings = fromSerpAPI(jobs)
	default:
		return nil, eris.Errorf("pipeline: unknown job provider %q", params.Provider)
	}

	postings = dedupePostings(postings)

	batchID, err := p.store.SaveJobBatch(ctx, params.Query, postings)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: save job batch")
	}
	zap.L().Info("pipeline: job batch saved",
		zap.String("batch_id", batchID),
		zap.String("query", params.Query),
		zap.Int("postings", len(postings)))

	return postings, nil
}

func fromSerpAPI(jobs []serpapi.Job) []model.JobPosting {
	out := make([]model.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, model.JobPosting{
			Title:       j.Title,
			Company:     j.Company,
			Location:    j.Location,
			Country:     ExtractCountry(j.Location),
			Type:        j.Type,
			Source:      sourceSerpAPI,
			Posted:      j.Posted,
			ApplyLink:   j.ApplyLink,
			Description: j.Description,
			CompanyURL:  j.Via,
		})
	}
	return out
}

func fromJSearch(jobs []jsearch.Job) []model.JobPosting {
	out := make([]model.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, model.JobPosting{
			Title:       j.Title,
			Company:     j.Company,
			Location:    j.Location,
			Country:     ExtractCountry(j.Location),
			Type:        j.Type,
			Source:      sourceJSearch,
			Posted:      j.Posted,
			ApplyLink:   j.ApplyLink,
			Description: j.Description,
			CompanyURL:  j.CompanyURL,
		})
	}
	return out
}

// dedupePostings drops repeated postings keyed on title, company, and
// location, keeping first occurrence order.
func dedupePostings(postings []model.JobPosting) []model.JobPosting {
	seen := make(map[string]struct{}, len(postings))
	out := postings[:0]
	for _, p := range postings {
		key := p.Title + "|" + p.Company + "|" + p.Location
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

var countryAliases = map[string]string{
	"USA": "United States",
	"UK":  "United Kingdom",
	"UAE": "UAE",
	"KSA": "Saudi Arabia",
}

// ExtractCountry derives a country from a free-form location string.
// Remote-style locations map to "Remote"; otherwise the part after the
// last comma is taken as the country, with common abbreviations
// expanded. A single-part location carries no country.
func ExtractCountry(location string) string {
	if location == "" {
		return "Unknown"
	}
	lower := strings.ToLower(location)
	if strings.Contains(lower, "remote") || strings.Contains(lower, "anywhere") {
		return "Remote"
	}

	parts := strings.Split(location, ",")
	last := strings.ToUpper(strings.TrimSpace(parts[len(parts)-1]))
	if full, ok := countryAliases[last]; ok {
		return full
	}
	if len(parts) > 1 {
		return titleCaser.String(strings.ToLower(last))
	}
	return "Unknown"
}
