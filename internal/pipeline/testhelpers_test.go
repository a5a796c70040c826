package pipeline

import (
	"time"

	"github.com/leadscout/leadgen-cli/internal/config"
	"github.com/leadscout/leadgen-cli/internal/intel"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testDeps bundles one mock per collaborator.
type testDeps struct {
	store   *mockStore
	tavily  *mockTavilyClient
	groq    *mockGroqClient
	serpapi *mockSerpAPIClient
	jsearch *mockJSearchClient
	sheet   *mockSheetSink
}

// newTestPipeline builds a Pipeline on mocks with no rate limiting, no
// retries, and a fixed clock.
func newTestPipeline() (*Pipeline, *testDeps) {
	deps := &testDeps{
		store:   &mockStore{},
		tavily:  &mockTavilyClient{},
		groq:    &mockGroqClient{},
		serpapi: &mockSerpAPIClient{},
		jsearch: &mockJSearchClient{},
		sheet:   &mockSheetSink{},
	}

	cfg := &config.Config{
		Research: config.ResearchConfig{
			Retries:        1,
			MaxConcurrent:  2,
			NewsMaxResults: 10,
			FinMaxResults:  20,
		},
	}

	p := New(cfg, deps.store, intel.MustLexicon(), deps.tavily, deps.groq, deps.serpapi, deps.jsearch, deps.sheet)
	p.now = func() time.Time { return testNow }
	return p, deps
}
