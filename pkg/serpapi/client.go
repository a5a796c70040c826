// Package serpapi queries the SerpAPI Google Jobs engine with chips
// filters, pagination, and failover across multiple API keys.
package serpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadscout/leadgen-cli/internal/resilience"
)

const defaultBaseURL = "https://serpapi.com"

// All disables a chips filter.
const All = "All"

// Filters narrows a Google Jobs search. Zero or "All" values are
// omitted from the chips parameter.
type Filters struct {
	DatePosted     string
	EmploymentType string
}

// Job is one Google Jobs result.
type Job struct {
	Title       string
	Company     string
	Location    string
	Type        string
	Posted      string
	ApplyLink   string
	Description string
	Via         string
}

// Client searches the Google Jobs engine.
type Client interface {
	SearchJobs(ctx context.Context, query, location string, filters Filters, limit int) ([]Job, error)
}

type searchResponse struct {
	JobsResults []struct {
		Title              string `json:"title"`
		CompanyName        string `json:"company_name"`
		Location           string `json:"location"`
		JobType            string `json:"job_type"`
		Description        string `json:"description"`
		Via                string `json:"via"`
		DetectedExtensions struct {
			PostedAt string `json:"posted_at"`
		} `json:"detected_extensions"`
		ApplyOptions []struct {
			Link string `json:"link"`
		} `json:"apply_options"`
	} `json:"jobs_results"`
	SerpapiPagination struct {
		NextPageToken string `json:"next_page_token"`
	} `json:"serpapi_pagination"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKeys []string
	baseURL string
	http    *http.Client
}

// NewClient creates a SerpAPI client with a key pool. When a key stops
// returning results the next key picks up the search.
func NewClient(apiKeys []string, opts ...Option) Client {
	c := &httpClient{
		apiKeys: apiKeys,
		baseURL: defaultBaseURL,
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
	if len(c.apiKeys) == 0 {
		return nil, eris.New("serpapi: no api keys configured")
	}
	if limit <= 0 {
		limit = 20
	}

	gl, hl := localeFor(location)
	chips := buildChips(filters)

	var jobs []Job
	keyIndex := 0
	token := ""

	for len(jobs) < limit && keyIndex < len(c.apiKeys) {
		if ctx.Err() != nil {
			return jobs, ctx.Err()
		}

		page, err := c.fetchPage(ctx, query, location, gl, hl, chips, c.apiKeys[keyIndex], token)
		if err != nil {
			zap.L().Warn("serpapi page fetch failed, advancing key",
				zap.Int("key_index", keyIndex),
				zap.Error(err),
			)
			keyIndex++
			token = ""
			continue
		}

		if len(page.JobsResults) == 0 {
			keyIndex++
			token = ""
			continue
		}

		for _, j := range page.JobsResults {
			job := Job{
				Title:       j.Title,
				Company:     j.CompanyName,
				Location:    j.Location,
				Type:        j.JobType,
				Posted:      j.DetectedExtensions.PostedAt,
				Description: j.Description,
				Via:         j.Via,
			}
			if len(j.ApplyOptions) > 0 {
				job.ApplyLink = j.ApplyOptions[0].Link
			}
			jobs = append(jobs, job)
			if len(jobs) >= limit {
				break
			}
		}

		token = page.SerpapiPagination.NextPageToken
		if token == "" {
			keyIndex++
		}
	}

	return jobs, nil
}

func (c *httpClient) fetchPage(ctx context.Context, query, location, gl, hl, chips, apiKey, token string) (*searchResponse, error) {
	params := url.Values{}
	params.Set("engine", "google_jobs")
	params.Set("q", query)
	params.Set("location", location)
	params.Set("gl", gl)
	params.Set("hl", hl)
	params.Set("api_key", apiKey)
	if chips != "" {
		params.Set("chips", chips)
	}
	if token != "" {
		params.Set("next_page_token", token)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: create request")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: read response")
	}

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("serpapi: unexpected status %d: %s", resp.StatusCode, string(respBody))
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "serpapi: unmarshal response")
	}
	return &result, nil
}

func buildChips(filters Filters) string {
	var chips []string
	if filters.DatePosted != "" && filters.DatePosted != All {
		chips = append(chips, "date_posted:"+filters.DatePosted)
	}
	if filters.EmploymentType != "" && filters.EmploymentType != All {
		chips = append(chips, "employment_type:"+filters.EmploymentType)
	}
	return strings.Join(chips, ",")
}
