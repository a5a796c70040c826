package leadscore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/leadscout/leadgen-cli/internal/model"
)

// maxScore caps every strategy's output.
const maxScore = 100

// Any disables a preference bucket.
const Any = "Any"

// Tuning defaults, used when Preferences leaves a knob at zero.
const (
	defaultPointsPerRole  = 5
	defaultRangeTolerance = 0.2
)

// Preferences are the buyer-profile filters a scoring run matches
// company financials against, plus the tuning knobs a deployment can
// override. Zero-valued knobs fall back to the package defaults.
type Preferences struct {
	RevenueRange  string
	EmployeeRange string

	PointsPerRole   float64
	RangeTolerance  float64
	INRCroreToUSDMM float64
}

func (p Preferences) pointsPerRole() float64 {
	if p.PointsPerRole > 0 {
		return p.PointsPerRole
	}
	return defaultPointsPerRole
}

func (p Preferences) tolerance() float64 {
	if p.RangeTolerance > 0 {
		return p.RangeTolerance
	}
	return defaultRangeTolerance
}

func (p Preferences) croreRate() float64 {
	if p.INRCroreToUSDMM > 0 {
		return p.INRCroreToUSDMM
	}
	return defaultINRCroreToUSDMM
}

var revenueRanges = map[string][2]float64{
	"1M/yr - 50M/yr": {1, 50},
	"50M/yr - 1B/yr": {50, 1000},
	"1B+/yr":         {1000, maxFloat},
}

var employeeRanges = map[string][2]float64{
	"10 - 100":    {10, 100},
	"100 - 999":   {100, 999},
	"1000 - 5000": {1000, 5000},
	"5000+":       {5000, maxFloat},
}

const maxFloat = float64(1 << 62) // effectively unbounded upper edge

// RevenueChoices lists the accepted revenue preference buckets.
func RevenueChoices() []string {
	return []string{Any, "1M/yr - 50M/yr", "50M/yr - 1B/yr", "1B+/yr"}
}

// EmployeeChoices lists the accepted company-size preference buckets.
func EmployeeChoices() []string {
	return []string{Any, "10 - 100", "100 - 999", "1000 - 5000", "5000+"}
}

// RevenueMatchScore awards 5 points for revenue inside the chosen
// bucket, 2.5 within the default 20% tolerance band, otherwise 0. A
// nil value or the Any bucket scores 0.
func RevenueMatchScore(val *float64, choice string) float64 {
	return revenueMatchScore(val, choice, defaultRangeTolerance)
}

// EmployeeMatchScore is RevenueMatchScore for headcount buckets.
func EmployeeMatchScore(val *int, choice string) float64 {
	return employeeMatchScore(val, choice, defaultRangeTolerance)
}

func revenueMatchScore(val *float64, choice string, tol float64) float64 {
	if val == nil || choice == Any {
		return 0
	}
	r, ok := revenueRanges[choice]
	if !ok {
		return 0
	}
	return bandScore(*val, r[0], r[1], tol)
}

func employeeMatchScore(val *int, choice string, tol float64) float64 {
	if val == nil || choice == Any {
		return 0
	}
	r, ok := employeeRanges[choice]
	if !ok {
		return 0
	}
	return bandScore(float64(*val), r[0], r[1], tol)
}

func bandScore(v, low, high, tol float64) float64 {
	if low <= v && v <= high {
		return 5
	}
	if low*(1-tol) <= v && v <= high*(1+tol) {
		return 2.5
	}
	return 0
}

// Strategy turns per-company hiring signals and an optional financial
// estimate into a lead score with a rank breakdown.
type Strategy interface {
	Name() string
	Score(sig model.CompanySignals, est *model.FinancialEstimate, prefs Preferences) model.LeadScoring
}

// ForName resolves a strategy by its CLI name.
func ForName(name string) (Strategy, error) {
	switch name {
	case "per-role":
		return PerRoleStrategy{}, nil
	case "intent":
		return IntentStrategy{}, nil
	default:
		return nil, eris.Errorf("leadscore: unknown strategy %q (want per-role or intent)", name)
	}
}

// PerRoleStrategy awards a fixed number of points per distinct open
// role (default 5) plus the financial match scores, with one breakdown
// line per nonzero contribution in role, revenue, employee order.
type PerRoleStrategy struct{}

func (PerRoleStrategy) Name() string { return "per-role" }

func (PerRoleStrategy) Score(sig model.CompanySignals, est *model.FinancialEstimate, prefs Preferences) model.LeadScoring {
	var score float64
	var breakdown []string

	pts := prefs.pointsPerRole()
	for _, role := range sig.Roles {
		score += pts
		breakdown = append(breakdown, fmt.Sprintf("+%s (Role: %s)", formatPoints(pts), role))
	}

	finScore, finBreakdown := financialMatch(est, prefs)
	score += finScore
	breakdown = append(breakdown, finBreakdown...)

	return model.LeadScoring{
		LeadScore:    clamp(score),
		RankBreakout: strings.Join(breakdown, " | "),
	}
}

// financialMatch scores the estimate against the preference buckets and
// returns the points with their breakdown lines.
func financialMatch(est *model.FinancialEstimate, prefs Preferences) (float64, []string) {
	if est == nil {
		return 0, nil
	}

	rev := NormalizeRevenueRate(est.AnnualRevenue, prefs.croreRate())
	emp := NormalizeEmployees(est.TotalEmployeeCount)

	revScore := revenueMatchScore(rev, prefs.RevenueRange, prefs.tolerance())
	empScore := employeeMatchScore(emp, prefs.EmployeeRange, prefs.tolerance())

	var breakdown []string
	if revScore > 0 {
		breakdown = append(breakdown, fmt.Sprintf("+%s (Revenue: %s)", formatPoints(revScore), est.AnnualRevenue))
	}
	if empScore > 0 {
		breakdown = append(breakdown, fmt.Sprintf("+%s (Employees: %v)", formatPoints(empScore), est.TotalEmployeeCount))
	}
	return revScore + empScore, breakdown
}

// intentBonus weights the detected hiring need.
var intentBonus = map[string]float64{
	"CRM Migration":              25,
	"System Integration":         20,
	"Salesforce Optimization":    15,
	"Ongoing Salesforce Support": 10,
	"Salesforce Expansion":       10,
}

// IntentStrategy weights open-role volume (capped at 60) plus a bonus
// for the detected hiring need, plus the same financial match scores.
type IntentStrategy struct{}

func (IntentStrategy) Name() string { return "intent" }

func (IntentStrategy) Score(sig model.CompanySignals, est *model.FinancialEstimate, prefs Preferences) model.LeadScoring {
	var breakdown []string

	vacancy := float64(sig.OpenRoles * 20)
	if vacancy > 60 {
		vacancy = 60
	}
	score := vacancy
	if vacancy > 0 {
		breakdown = append(breakdown, fmt.Sprintf("+%s (Open Roles: %d)", formatPoints(vacancy), sig.OpenRoles))
	}

	if bonus, ok := intentBonus[sig.DetectedNeed]; ok {
		score += bonus
		breakdown = append(breakdown, fmt.Sprintf("+%s (Need: %s)", formatPoints(bonus), sig.DetectedNeed))
	}

	finScore, finBreakdown := financialMatch(est, prefs)
	score += finScore
	breakdown = append(breakdown, finBreakdown...)

	return model.LeadScoring{
		LeadScore:    clamp(score),
		RankBreakout: strings.Join(breakdown, " | "),
	}
}

func clamp(v float64) float64 {
	if v > maxScore {
		return maxScore
	}
	if v < 0 {
		return 0
	}
	return v
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
