// Package jsearch queries the RapidAPI JSearch endpoint. Filters are
// folded into the query text since the API has no chips equivalent.
package jsearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/leadscout/leadgen-cli/internal/resilience"
)

const (
	defaultBaseURL = "https://jsearch.p.rapidapi.com"
	defaultHost    = "jsearch.p.rapidapi.com"
)

// All disables a filter.
const All = "All"

// Filters narrows a JSearch query via query-text enhancement.
type Filters struct {
	DatePosted     string
	EmploymentType string
}

// Job is one JSearch result.
type Job struct {
	ID          string
	Title       string
	Company     string
	Location    string
	Type        string
	Posted      string
	ApplyLink   string
	Description string
	CompanyURL  string
}

// Client searches JSearch.
type Client interface {
	SearchJobs(ctx context.Context, query, location string, filters Filters, limit int) ([]Job, error)
}

type searchResponse struct {
	Status string `json:"status"`
	Data   []struct {
		JobID             string `json:"job_id"`
		JobTitle          string `json:"job_title"`
		EmployerName      string `json:"employer_name"`
		EmployerWebsite   string `json:"employer_website"`
		JobLocation       string `json:"job_location"`
		JobCity           string `json:"job_city"`
		JobState          string `json:"job_state"`
		JobCountry        string `json:"job_country"`
		JobEmploymentType string `json:"job_employment_type"`
		JobPostedAt       string `json:"job_posted_at"`
		JobApplyLink      string `json:"job_apply_link"`
		JobDescription    string `json:"job_description"`
	} `json:"data"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHost overrides the x-rapidapi-host header.
func WithHost(host string) Option {
	return func(c *httpClient) {
		c.host = host
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	host    string
	http    *http.Client
}

// NewClient creates a JSearch client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		host:    defaultHost,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) SearchJobs(ctx context.Context, query, location string, filters Filters, limit int) ([]Job, error) {
	if c.apiKey == "" {
		return nil, eris.New("jsearch: no api key configured")
	}
	if limit <= 0 {
		limit = 20
	}

	params := url.Values{}
	params.Set("query", EnhanceQuery(query, location, filters))
	params.Set("page", "1")
	params.Set("num_pages", strconv.Itoa(limit/10+2))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "jsearch: create request")
	}
	httpReq.Header.Set("x-rapidapi-key", c.apiKey)
	httpReq.Header.Set("x-rapidapi-host", c.host)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "jsearch: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "jsearch: read response")
	}

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("jsearch: unexpected status %d: %s", resp.StatusCode, string(respBody))
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "jsearch: unmarshal response")
	}
	if result.Status != "OK" {
		return nil, eris.Errorf("jsearch: status %q", result.Status)
	}

	var jobs []Job
	for _, j := range result.Data {
		loc := j.JobLocation
		if loc == "" {
			parts := make([]string, 0, 3)
			for _, p := range []string{j.JobCity, j.JobState, j.JobCountry} {
				if p != "" {
					parts = append(parts, p)
				}
			}
			loc = strings.Join(parts, ", ")
			if loc == "" {
				loc = "Remote/Unknown"
			}
		}

		jobs = append(jobs, Job{
			ID:          j.JobID,
			Title:       j.JobTitle,
			Company:     j.EmployerName,
			Location:    loc,
			Type:        j.JobEmploymentType,
			Posted:      j.JobPostedAt,
			ApplyLink:   j.JobApplyLink,
			Description: j.JobDescription,
			CompanyURL:  j.EmployerWebsite,
		})
		if len(jobs) >= limit {
			break
		}
	}
	return jobs, nil
}

// EnhanceQuery folds the location and filters into the query text the
// way JSearch expects them.
func EnhanceQuery(query, location string, filters Filters) string {
	parts := []string{query}
	if location != "" {
		parts = append(parts, "in "+location)
	}

	if filters.EmploymentType != "" && filters.EmploymentType != All {
		typeMap := map[string]string{
			"FULLTIME":   "full time",
			"CONTRACTOR": "contract",
			"INTERN":     "internship",
		}
		if t, ok := typeMap[filters.EmploymentType]; ok {
			parts = append(parts, t)
		}
	}

	if filters.DatePosted != "" && filters.DatePosted != All {
		dateMap := map[string]string{
			"today": "today",
			"3days": "past 3 days",
			"week":  "past week",
			"month": "past month",
		}
		if d, ok := dateMap[filters.DatePosted]; ok {
			parts = append(parts, d)
		}
	}

	return strings.Join(parts, " ")
}
