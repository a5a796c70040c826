// Package leadscore normalizes messy financial figures and scores
// hiring signals into a single lead score with a human-readable
// breakdown.
package leadscore

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// defaultINRCroreToUSDMM converts ₹1 crore to millions of USD.
const defaultINRCroreToUSDMM = 0.12

var dollarBillionRe = regexp.MustCompile(`\$(\d+(?:\.\d+)?)b`)

// NormalizeRevenue converts a free-form revenue string to millions of
// USD. Recognized forms, checked in order: "₹275 Cr", "$1.2B",
// "$670.4 million", "$55.3 billion". Unrecognized input, including the
// estimate-service "Not Found" sentinel, yields nil.
func NormalizeRevenue(raw string) *float64 {
	return NormalizeRevenueRate(raw, defaultINRCroreToUSDMM)
}

// NormalizeRevenueRate is NormalizeRevenue with an explicit crore
// conversion rate, for deployments that pin their own FX assumption.
func NormalizeRevenueRate(raw string, inrCroreToUSDMM float64) *float64 {
	v, err := parseRevenue(raw, inrCroreToUSDMM)
	if err != nil {
		return nil
	}
	return &v
}

func parseRevenue(raw string, inrCroreToUSDMM float64) (float64, error) {
	if raw == "" {
		return 0, eris.New("leadscore: empty revenue")
	}
	r := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(raw), ",", ""))

	if strings.Contains(r, "₹") && strings.Contains(r, "cr") {
		body := r[strings.Index(r, "₹")+len("₹"):]
		body = strings.TrimSpace(body[:strings.Index(body, "cr")])
		v, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return 0, eris.Wrapf(err, "leadscore: parse crore revenue %q", raw)
		}
		return v * inrCroreToUSDMM, nil
	}

	if m := dollarBillionRe.FindStringSubmatch(r); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, eris.Wrapf(err, "leadscore: parse billion revenue %q", raw)
		}
		return v * 1000, nil
	}

	if strings.Contains(r, "million") {
		v, err := parseLeadingAmount(r)
		if err != nil {
			return 0, err
		}
		return v, nil
	}

	if strings.Contains(r, "billion") {
		v, err := parseLeadingAmount(r)
		if err != nil {
			return 0, err
		}
		return v * 1000, nil
	}

	return 0, eris.Errorf("leadscore: unrecognized revenue %q", raw)
}

func parseLeadingAmount(r string) (float64, error) {
	fields := strings.Fields(r)
	if len(fields) == 0 {
		return 0, eris.New("leadscore: blank revenue")
	}
	v, err := strconv.ParseFloat(strings.TrimPrefix(fields[0], "$"), 64)
	if err != nil {
		return 0, eris.Wrapf(err, "leadscore: parse revenue amount %q", fields[0])
	}
	return v, nil
}

// NormalizeEmployees converts an employee count of unknown shape to a
// concrete number. Accepts ints, JSON numbers, "5000+" (lower bound),
// "201-500" (floored midpoint), and plain digit strings. Anything else,
// including "Not Found", yields nil.
func NormalizeEmployees(v any) *int {
	switch t := v.(type) {
	case nil:
		return nil
	case int:
		return &t
	case float64:
		n := int(t)
		return &n
	case string:
		n, err := parseEmployeeString(t)
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

func parseEmployeeString(raw string) (int, error) {
	v := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(raw), ",", ""))

	if strings.HasSuffix(v, "+") {
		n, err := strconv.Atoi(strings.TrimSuffix(v, "+"))
		if err != nil {
			return 0, eris.Wrapf(err, "leadscore: parse employee bound %q", raw)
		}
		return n, nil
	}

	if low, high, ok := strings.Cut(v, "-"); ok {
		l, err := strconv.Atoi(strings.TrimSpace(low))
		if err != nil {
			return 0, eris.Wrapf(err, "leadscore: parse employee range %q", raw)
		}
		h, err := strconv.Atoi(strings.TrimSpace(high))
		if err != nil {
			return 0, eris.Wrapf(err, "leadscore: parse employee range %q", raw)
		}
		return (l + h) / 2, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, eris.Wrapf(err, "leadscore: parse employee count %q", raw)
	}
	return n, nil
}
