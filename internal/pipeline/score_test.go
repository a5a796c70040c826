package pipeline

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/leadscout/leadgen-cli/internal/leadscore"
	"github.com/leadscout/leadgen-cli/internal/model"
)

func TestScoreAll(t *testing.T) {
	p, deps := newTestPipeline()

	deps.store.On("LatestJobBatch", mock.Anything).Return([]model.JobPosting{
		{Title: "Salesforce Developer", Company: "Acme", Location: "Bangalore, India", Country: "India",
			Description: "Lead our CRM migration project"},
		{Title: "Salesforce Admin", Company: "Acme", Location: "Bangalore, India", Country: "India"},
		{Title: "Salesforce Consultant", Company: "Beta Corp", Location: "London, UK", Country: "United Kingdom"},
	}, nil).Once()

	deps.store.On("ListEstimates", mock.Anything).Return(map[string]model.FinancialEstimate{
		"acme": {AnnualRevenue: "$30 million", TotalEmployeeCount: "201-500"},
	}, nil).Once()

	deps.store.On("InjectScoring", mock.Anything, "Acme", mock.Anything).Return(nil).Once()
	deps.store.On("InjectScoring", mock.Anything, "Beta Corp", mock.Anything).Return(nil).Once()

	scored, err := p.ScoreAll(context.Background(), "per-role", leadscore.Preferences{
		RevenueRange:  "1M/yr - 50M/yr",
		EmployeeRange: "100 - 999",
	})
	require.NoError(t, err)
	deps.store.AssertExpectations(t)
	require.Len(t, scored, 2)

	// Acme: 2 roles + revenue + employee match, sorted first.
	acme := scored[0]
	assert.Equal(t, "Acme", acme.Signals.Company)
	assert.Equal(t, "CRM Migration", acme.Signals.DetectedNeed)
	assert.Equal(t, "Hiring 2 role(s) across India, indicating crm migration.", acme.Signals.Why)
	assert.InDelta(t, 20.0, acme.Scoring.LeadScore, 0.001)
	assert.Equal(t,
		"+5 (Role: Salesforce Admin) | +5 (Role: Salesforce Developer) | +5 (Revenue: $30 million) | +5 (Employees: 201-500)",
		acme.Scoring.RankBreakout)

	beta := scored[1]
	assert.Equal(t, "Beta Corp", beta.Signals.Company)
	assert.Equal(t, "Salesforce Expansion", beta.Signals.DetectedNeed)
	assert.InDelta(t, 5.0, beta.Scoring.LeadScore, 0.001)
}

func TestScoreAllMissingProfileDoesNotAbort(t *testing.T) {
	p, deps := newTestPipeline()

	deps.store.On("LatestJobBatch", mock.Anything).Return([]model.JobPosting{
		{Title: "Salesforce Developer", Company: "Ghost Co"},
	}, nil).Once()
	deps.store.On("ListEstimates", mock.Anything).
		Return(map[string]model.FinancialEstimate{}, nil).Once()
	deps.store.On("InjectScoring", mock.Anything, "Ghost Co", mock.Anything).
		Return(eris.New("store: profile not found")).Once()

	scored, err := p.ScoreAll(context.Background(), "intent", leadscore.Preferences{
		RevenueRange:  leadscore.Any,
		EmployeeRange: leadscore.Any,
	})
	require.NoError(t, err)
	require.Len(t, scored, 1)

	// One role, default need: 20 vacancy points + 10 expansion bonus.
	assert.InDelta(t, 30.0, scored[0].Scoring.LeadScore, 0.001)
}

func TestScoreAllUnknownStrategy(t *testing.T) {
	p, _ := newTestPipeline()

	_, err := p.ScoreAll(context.Background(), "bogus", leadscore.Preferences{})
	assert.Error(t, err)
}

func TestScoreAllUsesScoringConfig(t *testing.T) {
	p, deps := newTestPipeline()
	p.cfg.Scoring.Strategy = "per-role"
	p.cfg.Scoring.PointsPerRole = 10

	deps.store.On("LatestJobBatch", mock.Anything).Return([]model.JobPosting{
		{Title: "Salesforce Developer", Company: "Acme"},
		{Title: "Salesforce Admin", Company: "Acme"},
	}, nil).Once()
	deps.store.On("ListEstimates", mock.Anything).
		Return(map[string]model.FinancialEstimate{}, nil).Once()
	deps.store.On("InjectScoring", mock.Anything, "Acme", mock.Anything).Return(nil).Once()

	// An empty strategy name falls back to the configured one, and the
	// configured per-role points replace the default 5.
	scored, err := p.ScoreAll(context.Background(), "", leadscore.Preferences{
		RevenueRange:  leadscore.Any,
		EmployeeRange: leadscore.Any,
	})
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.InDelta(t, 20.0, scored[0].Scoring.LeadScore, 0.001)
	assert.Contains(t, scored[0].Scoring.RankBreakout, "+10 (Role: Salesforce Admin)")
}

func TestQualified(t *testing.T) {
	p, _ := newTestPipeline()
	p.cfg.Research.ScoreThreshold = 10

	scored := []ScoredCompany{
		{Signals: model.CompanySignals{Company: "Acme"}, Scoring: model.LeadScoring{LeadScore: 20}},
		{Signals: model.CompanySignals{Company: "Beta Corp"}, Scoring: model.LeadScoring{LeadScore: 10}},
		{Signals: model.CompanySignals{Company: "Ghost Co"}, Scoring: model.LeadScoring{LeadScore: 5}},
	}

	assert.Equal(t, []string{"Acme", "Beta Corp"}, p.Qualified(scored))
}
