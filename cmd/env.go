package main

import (
	"context"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadscout/leadgen-cli/internal/intel"
	"github.com/leadscout/leadgen-cli/internal/pipeline"
	"github.com/leadscout/leadgen-cli/internal/store"
	"github.com/leadscout/leadgen-cli/pkg/groq"
	"github.com/leadscout/leadgen-cli/pkg/jsearch"
	"github.com/leadscout/leadgen-cli/pkg/serpapi"
	"github.com/leadscout/leadgen-cli/pkg/sheets"
	"github.com/leadscout/leadgen-cli/pkg/tavily"
)

// pipelineEnv holds the initialized store and pipeline used by the stage
// commands.
type pipelineEnv struct {
	Store    store.Store
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "leadgen.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initPipeline sets up the store, API clients, and the pipeline. Clients
// whose keys are not configured stay nil; the commands that need them
// fail with a clear error from the collaborator. Callers should defer
// env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	tavilyClient := tavily.NewClient(cfg.Tavily.Keys, tavily.WithBaseURL(cfg.Tavily.BaseURL))
	groqClient := groq.NewClient(cfg.Groq.Keys, groq.WithBaseURL(cfg.Groq.BaseURL), groq.WithModel(cfg.Groq.Model))
	serpClient := serpapi.NewClient(cfg.SerpAPI.Keys, serpapi.WithBaseURL(cfg.SerpAPI.BaseURL))
	jsClient := jsearch.NewClient(cfg.JSearch.Key, jsearch.WithBaseURL(cfg.JSearch.BaseURL), jsearch.WithHost(cfg.JSearch.Host))

	// Sheets sync is optional; the sync command errors without it.
	var sheet sheets.Sink
	if cfg.Sheets.SpreadsheetID != "" && cfg.Sheets.ServiceAccountJSON != "" {
		creds, err := loadServiceAccount(cfg.Sheets.ServiceAccountJSON)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		sheet, err = sheets.NewClient(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName, creds)
		if err != nil {
			_ = st.Close()
			return nil, eris.Wrap(err, "init sheets client")
		}
	} else {
		zap.L().Debug("sheets sync not configured")
	}

	p := pipeline.New(cfg, st, intel.MustLexicon(), tavilyClient, groqClient, serpClient, jsClient, sheet)

	return &pipelineEnv{Store: st, Pipeline: p}, nil
}

// loadServiceAccount accepts either inline JSON credentials or a path to
// a credentials file.
func loadServiceAccount(value string) ([]byte, error) {
	if strings.HasPrefix(strings.TrimSpace(value), "{") {
		return []byte(value), nil
	}
	creds, err := os.ReadFile(value)
	if err != nil {
		return nil, eris.Wrap(err, "read sheets service account file")
	}
	return creds, nil
}
