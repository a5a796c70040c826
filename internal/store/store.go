package store

import (
	"context"
	"strings"

	"github.com/leadscout/leadgen-cli/internal/model"
)

// ProfileFilter specifies criteria for listing structured profiles.
type ProfileFilter struct {
	Company string `json:"company,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Offset  int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for the lead-generation
// pipeline. Reports, profiles, and estimates are keyed by normalized
// company name; saving again overwrites.
type Store interface {
	// Research reports
	SaveReport(ctx context.Context, report *model.ResearchReport) error
	GetReport(ctx context.Context, company string) (*model.ResearchReport, error)
	ListReportCompanies(ctx context.Context) ([]string, error)

	// Structured profiles
	SaveProfile(ctx context.Context, rec *model.CompanyProfileRecord) error
	GetProfile(ctx context.Context, company string) (*model.CompanyProfileRecord, error)
	ListProfiles(ctx context.Context, filter ProfileFilter) ([]model.CompanyProfileRecord, error)
	InjectScoring(ctx context.Context, company string, scoring model.LeadScoring) error

	// Financial estimates
	SaveEstimate(ctx context.Context, company string, est model.FinancialEstimate) error
	ListEstimates(ctx context.Context) (map[string]model.FinancialEstimate, error)

	// Job search batches
	SaveJobBatch(ctx context.Context, query string, postings []model.JobPosting) (string, error)
	LatestJobBatch(ctx context.Context) ([]model.JobPosting, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// CompanyKey normalizes a company name into the key all backends index
// on: trimmed and lowercased.
func CompanyKey(company string) string {
	return strings.ToLower(strings.TrimSpace(company))
}
