package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leadscout/leadgen-cli/internal/model"
	"github.com/leadscout/leadgen-cli/internal/resilience"
	"github.com/leadscout/leadgen-cli/pkg/tavily"
)

// targetDomains restricts the news query to outlets that cover SMEs,
// startups, and professional updates.
var targetDomains = []string{
	"linkedin.com", "crunchbase.com", "clutch.co", "goodfirms.co",
	"g2.com", "yourstory.com", "inc42.com", "entrackr.com",
	"medium.com", "prlog.org", "businesswire.com", "finance.yahoo.com",
}

const financialQuery = `Find detailed financial information for the company '%s':
1. Latest Annual Revenue.
2. Total Funding raised, Investors, and Valuation.
3. Employee Count and Company Size.
4. Corporate Registration (CIN, Headquarters).
5. Decision makers details (CEO, CTO etc).`

const newsQuery = `Recent announcements for company "%s":
1. Partnerships, Awards, or New Client wins.
2. Product launches or "We are hiring" posts.
3. Investment news or leadership changes.`

const snippetLen = 300

// Research runs the two-query deep research for each company and
// persists one report per company. A failed company is logged and
// skipped; the batch continues.
func (p *Pipeline) Research(ctx context.Context, companies []string) error {
	log := zap.L()
	for _, company := range companies {
		if err := p.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "pipeline: research cancelled")
		}

		cctx, cancel := p.opCtx(ctx)
		report, err := p.researchCompany(cctx, company)
		cancel()
		if err != nil {
			log.Warn("pipeline: research failed, skipping company",
				zap.String("company", company), zap.Error(err))
			continue
		}
		if err := p.store.SaveReport(ctx, report); err != nil {
			log.Warn("pipeline: save report failed",
				zap.String("company", company), zap.Error(err))
			continue
		}
		log.Info("pipeline: research complete",
			zap.String("company", company),
			zap.Int("fragments", len(report.FinancialIntelligence)),
			zap.Int("market_updates", len(report.MarketUpdates)))
	}
	return nil
}

func (p *Pipeline) researchCompany(ctx context.Context, company string) (*model.ResearchReport, error) {
	fin, err := resilience.DoVal(ctx, p.retryConfig("tavily", "financial search"), func(ctx context.Context) (*tavily.SearchResponse, error) {
		return p.tavily.Search(ctx, tavily.SearchRequest{
			Query:             fmt.Sprintf(financialQuery, company),
			MaxResults:        p.cfg.Research.FinMaxResults,
			IncludeAnswer:     true,
			IncludeRawContent: true,
		})
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: financial search")
	}

	news, err := resilience.DoVal(ctx, p.retryConfig("tavily", "news search"), func(ctx context.Context) (*tavily.SearchResponse, error) {
		return p.tavily.Search(ctx, tavily.SearchRequest{
			Query:             fmt.Sprintf(newsQuery, company),
			MaxResults:        p.cfg.Research.NewsMaxResults,
			IncludeAnswer:     true,
			IncludeRawContent: true,
			IncludeDomains:    targetDomains,
		})
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: news search")
	}

	report := &model.ResearchReport{
		Meta:          model.NewMeta(company, p.now()),
		MarketUpdates: verifySources(company, news.Results),
	}
	for _, r := range fin.Results {
		report.FinancialIntelligence = append(report.FinancialIntelligence, model.SourceFragment{
			Title:      r.Title,
			URL:        r.URL,
			Content:    r.Content,
			RawContent: r.RawContent,
		})
	}
	return report, nil
}

// verifySources keeps only news results whose snippet mentions the
// company's short name. Search engines return plenty of generically
// matching pages for short queries; requiring the name filters those
// out.
func verifySources(company string, results []tavily.SearchResult) []model.VerifiedSource {
	var shortName string
	if fields := strings.Fields(company); len(fields) > 0 {
		shortName = strings.ToLower(fields[0])
	}

	var verified []model.VerifiedSource
	for _, r := range results {
		if !strings.Contains(strings.ToLower(r.Content), shortName) {
			continue
		}
		verified = append(verified, model.VerifiedSource{
			Title:        titleFromURL(r.URL),
			URL:          r.URL,
			Snippet:      snippet(r.Content),
			SourceDomain: domainOf(r.URL),
		})
	}
	return verified
}

func snippet(content string) string {
	return truncate(content, snippetLen) + "..."
}

// truncate cuts s to at most max bytes, backing off to the previous
// rune boundary so a multi-byte character is never split.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

var titleCaser = cases.Title(language.English)

// titleFromURL derives a readable title from the last path segment,
// such as "acme-raises-series-a" becoming "Acme Raises Series A".
func titleFromURL(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	seg := trimmed
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		seg = trimmed[i+1:]
	}
	return titleCaser.String(strings.ReplaceAll(seg, "-", " "))
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}
