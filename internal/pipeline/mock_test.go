package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/leadscout/leadgen-cli/internal/model"
	"github.com/leadscout/leadgen-cli/internal/store"
	"github.com/leadscout/leadgen-cli/pkg/groq"
	"github.com/leadscout/leadgen-cli/pkg/jsearch"
	"github.com/leadscout/leadgen-cli/pkg/serpapi"
	"github.com/leadscout/leadgen-cli/pkg/tavily"
)

// --- Store Mock ---

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SaveReport(ctx context.Context, report *model.ResearchReport) error {
	return m.Called(ctx, report).Error(0)
}

func (m *mockStore) GetReport(ctx context.Context, company string) (*model.ResearchReport, error) {
	args := m.Called(ctx, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResearchReport), args.Error(1)
}

func (m *mockStore) ListReportCompanies(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStore) SaveProfile(ctx context.Context, rec *model.CompanyProfileRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockStore) GetProfile(ctx context.Context, company string) (*model.CompanyProfileRecord, error) {
	args := m.Called(ctx, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanyProfileRecord), args.Error(1)
}

func (m *mockStore) ListProfiles(ctx context.Context, filter store.ProfileFilter) ([]model.CompanyProfileRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CompanyProfileRecord), args.Error(1)
}

func (m *mockStore) InjectScoring(ctx context.Context, company string, scoring model.LeadScoring) error {
	return m.Called(ctx, company, scoring).Error(0)
}

func (m *mockStore) SaveEstimate(ctx context.Context, company string, est model.FinancialEstimate) error {
	return m.Called(ctx, company, est).Error(0)
}

func (m *mockStore) ListEstimates(ctx context.Context) (map[string]model.FinancialEstimate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.FinancialEstimate), args.Error(1)
}

func (m *mockStore) SaveJobBatch(ctx context.Context, query string, postings []model.JobPosting) (string, error) {
	args := m.Called(ctx, query, postings)
	return args.String(0), args.Error(1)
}

func (m *mockStore) LatestJobBatch(ctx context.Context) ([]model.JobPosting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JobPosting), args.Error(1)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}

// --- Tavily Mock ---

type mockTavilyClient struct {
	mock.Mock
}

func (m *mockTavilyClient) Search(ctx context.Context, req tavily.SearchRequest) (*tavily.SearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tavily.SearchResponse), args.Error(1)
}

// --- Groq Mock ---

type mockGroqClient struct {
	mock.Mock
}

func (m *mockGroqClient) Estimate(ctx context.Context, companyName, rawData string) (*model.FinancialEstimate, error) {
	args := m.Called(ctx, companyName, rawData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FinancialEstimate), args.Error(1)
}

var _ groq.Client = (*mockGroqClient)(nil)

// --- SerpAPI Mock ---

type mockSerpAPIClient struct {
	mock.Mock
}

func (m *mockSerpAPIClient) SearchJobs(ctx context.Context, query, location string, filters serpapi.Filters, limit int) ([]serpapi.Job, error) {
	args := m.Called(ctx, query, location, filters, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]serpapi.Job), args.Error(1)
}

// --- JSearch Mock ---

type mockJSearchClient struct {
	mock.Mock
}

func (m *mockJSearchClient) SearchJobs(ctx context.Context, query, location string, filters jsearch.Filters, limit int) ([]jsearch.Job, error) {
	args := m.Called(ctx, query, location, filters, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]jsearch.Job), args.Error(1)
}

// --- Sheet Sink Mock ---

type mockSheetSink struct {
	mock.Mock
}

func (m *mockSheetSink) Upsert(ctx context.Context, rows []map[string]string) error {
	return m.Called(ctx, rows).Error(0)
}
