package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadscout/leadgen-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testReport(company string) *model.ResearchReport {
	return &model.ResearchReport{
		Meta: model.NewMeta(company, time.Now().UTC()),
		FinancialIntelligence: []model.SourceFragment{
			{Title: "overview", URL: "https://example.com", Content: "snippet", RawContent: "full dump"},
		},
		MarketUpdates: []model.VerifiedSource{
			{Title: "news", URL: "https://news.example.com", Snippet: "s", SourceDomain: "news.example.com"},
		},
	}
}

func testProfile(company string) *model.CompanyProfileRecord {
	return &model.CompanyProfileRecord{
		Meta:           model.NewMeta(company, time.Now().UTC()),
		CompanyProfile: model.CompanyProfile{CompanyName: company, Website: "https://acme.com"},
		Competitors:    []string{"Beta Corp"},
	}
}

// --- Reports ---

func TestSQLite_Report_SaveAndGet(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveReport(ctx, testReport("Acme")))

	got, err := st.GetReport(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Meta.CompanyName)
	require.Len(t, got.FinancialIntelligence, 1)
	assert.Equal(t, "full dump", got.FinancialIntelligence[0].RawContent)
	require.Len(t, got.MarketUpdates, 1)
	assert.Equal(t, "news.example.com", got.MarketUpdates[0].SourceDomain)
}

func TestSQLite_Report_KeyIsCaseInsensitive(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveReport(ctx, testReport("Acme Technologies")))

	got, err := st.GetReport(ctx, "  ACME TECHNOLOGIES ")
	require.NoError(t, err)
	assert.Equal(t, "Acme Technologies", got.Meta.CompanyName)
}

func TestSQLite_Report_OverwriteOnRerun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	first := testReport("Acme")
	require.NoError(t, st.SaveReport(ctx, first))

	second := testReport("Acme")
	second.FinancialIntelligence[0].Content = "fresher snippet"
	require.NoError(t, st.SaveReport(ctx, second))

	got, err := st.GetReport(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "fresher snippet", got.FinancialIntelligence[0].Content)

	companies, err := st.ListReportCompanies(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme"}, companies)
}

func TestSQLite_Report_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetReport(context.Background(), "Ghost Co")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_ListReportCompanies_Sorted(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for _, c := range []string{"Zeta", "Acme", "Midway"} {
		require.NoError(t, st.SaveReport(ctx, testReport(c)))
	}

	companies, err := st.ListReportCompanies(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Midway", "Zeta"}, companies)
}

// --- Profiles ---

func TestSQLite_Profile_SaveAndGet(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveProfile(ctx, testProfile("Acme")))

	got, err := st.GetProfile(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.com", got.CompanyProfile.Website)
	assert.Equal(t, []string{"Beta Corp"}, got.Competitors)
	assert.Nil(t, got.LeadScoring)
}

func TestSQLite_Profile_List(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for _, c := range []string{"Acme", "Beta", "Gamma"} {
		require.NoError(t, st.SaveProfile(ctx, testProfile(c)))
	}

	recs, err := st.ListProfiles(ctx, ProfileFilter{})
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	recs, err = st.ListProfiles(ctx, ProfileFilter{Company: "Beta"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Beta", recs[0].Meta.CompanyName)

	recs, err = st.ListProfiles(ctx, ProfileFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestSQLite_ListProfilesZeroLimitReturnsAll(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 120; i++ {
		require.NoError(t, st.SaveProfile(ctx, testProfile(fmt.Sprintf("Company %03d", i))))
	}

	recs, err := st.ListProfiles(ctx, ProfileFilter{})
	require.NoError(t, err)
	assert.Len(t, recs, 120)

	recs, err = st.ListProfiles(ctx, ProfileFilter{Offset: 100})
	require.NoError(t, err)
	assert.Len(t, recs, 20)
}

func TestSQLite_InjectScoring(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveProfile(ctx, testProfile("Acme")))

	scoring := model.LeadScoring{LeadScore: 42.5, RankBreakout: "+5 (Role: Admin)"}
	require.NoError(t, st.InjectScoring(ctx, "ACME", scoring))

	got, err := st.GetProfile(ctx, "Acme")
	require.NoError(t, err)
	require.NotNil(t, got.LeadScoring)
	assert.Equal(t, 42.5, got.LeadScoring.LeadScore)
	assert.Equal(t, "+5 (Role: Admin)", got.LeadScoring.RankBreakout)
}

func TestSQLite_InjectScoring_MissingProfile(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.InjectScoring(context.Background(), "Ghost Co", model.LeadScoring{LeadScore: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// --- Estimates ---

func TestSQLite_Estimates_SaveAndList(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveEstimate(ctx, "Acme", model.FinancialEstimate{
		AnnualRevenue:      "$30 million",
		TotalEmployeeCount: "201-500",
	}))
	require.NoError(t, st.SaveEstimate(ctx, "Beta", model.FinancialEstimate{
		AnnualRevenue:      model.NotFound,
		TotalEmployeeCount: model.NotFound,
	}))

	estimates, err := st.ListEstimates(ctx)
	require.NoError(t, err)
	require.Len(t, estimates, 2)
	assert.Equal(t, "$30 million", estimates["acme"].AnnualRevenue)
	assert.Equal(t, model.NotFound, estimates["beta"].AnnualRevenue)
}

func TestSQLite_Estimates_Overwrite(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveEstimate(ctx, "Acme", model.FinancialEstimate{AnnualRevenue: "$10 million"}))
	require.NoError(t, st.SaveEstimate(ctx, "Acme", model.FinancialEstimate{AnnualRevenue: "$12 million"}))

	estimates, err := st.ListEstimates(ctx)
	require.NoError(t, err)
	require.Len(t, estimates, 1)
	assert.Equal(t, "$12 million", estimates["acme"].AnnualRevenue)
}

// --- Job batches ---

func TestSQLite_JobBatch_SaveAndLatest(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.SaveJobBatch(ctx, "salesforce admin", []model.JobPosting{
		{Title: "Salesforce Admin", Company: "Acme", Location: "Mumbai, India"},
	})
	require.NoError(t, err)

	id, err := st.SaveJobBatch(ctx, "salesforce developer", []model.JobPosting{
		{Title: "Salesforce Developer", Company: "Beta", Location: "Austin, TX"},
		{Title: "Salesforce Architect", Company: "Beta", Location: "Remote"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	postings, err := st.LatestJobBatch(ctx)
	require.NoError(t, err)
	require.Len(t, postings, 2)
	assert.Equal(t, "Beta", postings[0].Company)
}

func TestSQLite_JobBatch_Empty(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.LatestJobBatch(context.Background())
	require.Error(t, err)
}
