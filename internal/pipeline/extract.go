package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ExtractAll builds structured profiles for every stored report,
// bounded-parallel. Extraction is pure once the report is loaded, so
// companies run concurrently. Returns the number of profiles written.
func (p *Pipeline) ExtractAll(ctx context.Context) (int, error) {
	companies, err := p.store.ListReportCompanies(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "pipeline: list reports")
	}

	var extracted atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	if p.cfg.Research.MaxConcurrent > 0 {
		g.SetLimit(p.cfg.Research.MaxConcurrent)
	}
	for _, company := range companies {
		company := company
		g.Go(func() error {
			if err := p.Extract(gctx, company); err != nil {
				zap.L().Warn("pipeline: extract failed, skipping company",
					zap.String("company", company), zap.Error(err))
				return nil
			}
			extracted.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(extracted.Load()), err
	}
	return int(extracted.Load()), nil
}

// Extract builds and persists one company's structured profile from its
// stored report. A re-run overwrites the stored record.
func (p *Pipeline) Extract(ctx context.Context, company string) error {
	report, err := p.store.GetReport(ctx, company)
	if err != nil {
		return eris.Wrapf(err, "pipeline: load report for %s", company)
	}

	rec := p.lex.BuildProfile(report, p.now())
	if err := p.store.SaveProfile(ctx, rec); err != nil {
		return eris.Wrapf(err, "pipeline: save profile for %s", company)
	}
	return nil
}
