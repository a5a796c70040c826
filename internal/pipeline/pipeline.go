// Package pipeline orchestrates the lead-generation stages: research,
// extraction, enrichment, job search, scoring, and spreadsheet sync.
// Each stage reads its input from the store and persists its output, so
// stages can run independently and in any order once their inputs exist.
package pipeline

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/leadscout/leadgen-cli/internal/config"
	"github.com/leadscout/leadgen-cli/internal/intel"
	"github.com/leadscout/leadgen-cli/internal/resilience"
	"github.com/leadscout/leadgen-cli/internal/store"
	"github.com/leadscout/leadgen-cli/pkg/groq"
	"github.com/leadscout/leadgen-cli/pkg/jsearch"
	"github.com/leadscout/leadgen-cli/pkg/serpapi"
	"github.com/leadscout/leadgen-cli/pkg/sheets"
	"github.com/leadscout/leadgen-cli/pkg/tavily"
)

// Pipeline wires the stages to their collaborators.
type Pipeline struct {
	cfg     *config.Config
	store   store.Store
	lex     *intel.Lexicon
	tavily  tavily.Client
	groq    groq.Client
	serpapi serpapi.Client
	jsearch jsearch.Client
	sheet   sheets.Sink

	limiter *rate.Limiter
	now     func() time.Time
}

// New creates a Pipeline with all dependencies. Clients for stages that
// will not run may be nil.
func New(
	cfg *config.Config,
	st store.Store,
	lex *intel.Lexicon,
	tavilyClient tavily.Client,
	groqClient groq.Client,
	serpClient serpapi.Client,
	jsClient jsearch.Client,
	sheet sheets.Sink,
) *Pipeline {
	limit := rate.Inf
	if cfg.Research.DelaySecs > 0 {
		limit = rate.Every(time.Duration(cfg.Research.DelaySecs) * time.Second)
	}
	return &Pipeline{
		cfg:     cfg,
		store:   st,
		lex:     lex,
		tavily:  tavilyClient,
		groq:    groqClient,
		serpapi: serpClient,
		jsearch: jsClient,
		sheet:   sheet,
		limiter: rate.NewLimiter(limit, 1),
		now:     time.Now,
	}
}

// opCtx bounds one company's external calls to the configured research
// timeout. A zero or negative timeout leaves the context unbounded.
func (p *Pipeline) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.cfg.Research.TimeoutSecs <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, time.Duration(p.cfg.Research.TimeoutSecs)*time.Second)
}

// retryConfig builds the per-stage retry policy from config, logging
// retries under the given service/operation pair.
func (p *Pipeline) retryConfig(service, operation string) resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	if p.cfg.Research.Retries > 0 {
		cfg.Attempts = p.cfg.Research.Retries
	}
	cfg.OnRetry = resilience.RetryLogger(service, operation)
	return cfg
}
