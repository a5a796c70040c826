package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadscout/leadgen-cli/internal/leadscore"
	"github.com/leadscout/leadgen-cli/internal/model"
	"github.com/leadscout/leadgen-cli/internal/store"
)

// ScoredCompany pairs a company's hiring signals with its lead score.
type ScoredCompany struct {
	Signals model.CompanySignals `json:"signals"`
	Scoring model.LeadScoring    `json:"scoring"`
}

// ScoreAll aggregates the latest job batch into per-company hiring
// signals, scores each company with the named strategy, and injects the
// scoring into the stored profiles that exist. Companies without a
// stored profile still come back scored; the injection is just skipped.
// Results are sorted score-descending.
func (p *Pipeline) ScoreAll(ctx context.Context, strategyName string, prefs leadscore.Preferences) ([]ScoredCompany, error) {
	if strategyName == "" {
		strategyName = p.cfg.Scoring.Strategy
	}
	strategy, err := leadscore.ForName(strategyName)
	if err != nil {
		return nil, err
	}
	prefs = p.applyScoringConfig(prefs)

	postings, err := p.store.LatestJobBatch(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: load job batch")
	}
	estimates, err := p.store.ListEstimates(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: load estimates")
	}

	log := zap.L()
	signals := model.AggregateSignals(postings)
	scored := make([]ScoredCompany, 0, len(signals))
	for _, sig := range signals {
		sig.DetectedNeed = leadscore.DetectNeed(p.lex, sig.Descriptions)
		sig.Why = whyThisLead(sig)

		var est *model.FinancialEstimate
		if e, ok := estimates[store.CompanyKey(sig.Company)]; ok {
			est = &e
		}
		scoring := strategy.Score(sig, est, prefs)

		if err := p.store.InjectScoring(ctx, sig.Company, scoring); err != nil {
			log.Debug("pipeline: no stored profile to score",
				zap.String("company", sig.Company), zap.Error(err))
		}
		scored = append(scored, ScoredCompany{Signals: sig, Scoring: scoring})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Scoring.LeadScore > scored[j].Scoring.LeadScore
	})

	log.Info("pipeline: scoring complete",
		zap.String("strategy", strategy.Name()),
		zap.Int("companies", len(scored)))
	return scored, nil
}

// applyScoringConfig fills the tuning knobs the caller left unset from
// the scoring configuration. The buyer-profile buckets always come from
// the caller.
func (p *Pipeline) applyScoringConfig(prefs leadscore.Preferences) leadscore.Preferences {
	sc := p.cfg.Scoring
	if prefs.PointsPerRole == 0 {
		prefs.PointsPerRole = sc.PointsPerRole
	}
	if prefs.RangeTolerance == 0 {
		prefs.RangeTolerance = sc.RangeTolerance
	}
	if prefs.INRCroreToUSDMM == 0 {
		prefs.INRCroreToUSDMM = sc.INRCroreToUSDMM
	}
	return prefs
}

// Qualified filters a scoring pass down to the companies whose lead
// score meets the configured research threshold, preserving order.
func (p *Pipeline) Qualified(scored []ScoredCompany) []string {
	out := make([]string, 0, len(scored))
	for _, s := range scored {
		if s.Scoring.LeadScore >= p.cfg.Research.ScoreThreshold {
			out = append(out, s.Signals.Company)
		}
	}
	return out
}

func whyThisLead(sig model.CompanySignals) string {
	countries := strings.Join(sig.Countries, ", ")
	if countries == "" {
		countries = "Unknown"
	}
	return fmt.Sprintf("Hiring %d role(s) across %s, indicating %s.",
		sig.OpenRoles, countries, strings.ToLower(sig.DetectedNeed))
}
