package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadscout/leadgen-cli/internal/model"
)

// maxEstimateInput caps the raw text handed to the estimate service so
// a large report does not blow the model's context window.
const maxEstimateInput = 24000

// Enrich asks the estimate service for revenue and headcount per
// company and persists the results. An empty company list means every
// company with a stored report. Per-company failures are logged and
// skipped.
func (p *Pipeline) Enrich(ctx context.Context, companies []string) error {
	log := zap.L()
	if len(companies) == 0 {
		var err error
		companies, err = p.store.ListReportCompanies(ctx)
		if err != nil {
			return eris.Wrap(err, "pipeline: list reports")
		}
	}

	for _, company := range companies {
		if err := p.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "pipeline: enrich cancelled")
		}

		cctx, cancel := p.opCtx(ctx)
		est, err := p.enrichCompany(cctx, company)
		cancel()
		if err != nil {
			log.Warn("pipeline: enrich failed, skipping company",
				zap.String("company", company), zap.Error(err))
			continue
		}
		if err := p.store.SaveEstimate(ctx, company, *est); err != nil {
			log.Warn("pipeline: save estimate failed",
				zap.String("company", company), zap.Error(err))
			continue
		}
		log.Info("pipeline: estimate saved",
			zap.String("company", company),
			zap.String("annual_revenue", est.AnnualRevenue))
	}
	return nil
}

func (p *Pipeline) enrichCompany(ctx context.Context, company string) (*model.FinancialEstimate, error) {
	report, err := p.store.GetReport(ctx, company)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: load report for %s", company)
	}

	raw := truncate(report.RawText(), maxEstimateInput)

	est, err := p.groq.Estimate(ctx, company, raw)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: estimate for %s", company)
	}
	return est, nil
}
