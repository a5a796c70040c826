// Package groq wraps the Groq OpenAI-style chat completions API for
// the financial estimate pass, with key rotation.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadscout/leadgen-cli/internal/model"
	"github.com/leadscout/leadgen-cli/internal/resilience"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"
)

// analystPrompt pins the estimate output to a strict two-key JSON object.
const analystPrompt = "You are a Senior Financial Data Analyst. Your job is to determine the single most accurate " +
	"Revenue and Employee count for a company based on search snippets.\n\n" +
	"RULES FOR DECISION MAKING:\n" +
	"1. **Revenue:**\n" +
	"   - PRIORITY 1: If you see an INR (₹) figure from official sources for the latest fiscal year, USE IT. Convert to a clean string (e.g., '₹275 Cr').\n" +
	"   - PRIORITY 2: If no INR figure exists, use the most credible USD figure.\n" +
	"   - IGNORE: automated estimates that look like revenue-per-employee calculations.\n" +
	"2. **Employees:**\n" +
	"   - Prefer exact numbers (e.g., 402) over ranges (e.g., 200-500).\n" +
	"3. **Output Format:**\n" +
	"   - Return ONLY a simple JSON object. No lists, no sources, no explanations.\n" +
	"   - Keys must be exactly: 'Annual Revenue' and 'Total Employee Count'.\n\n" +
	"FORMAT EXAMPLE:\n" +
	"{\n" +
	"  \"Annual Revenue\": \"$3 million\",\n" +
	"  \"Total Employee Count\": 31\n" +
	"}"

// Client produces financial estimates from raw search snippets.
type Client interface {
	Estimate(ctx context.Context, companyName, rawData string) (*model.FinancialEstimate, error)
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithModel overrides the default model.
func WithModel(m string) Option {
	return func(c *httpClient) {
		c.model = m
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
	model   string
	http    *http.Client
}

// NewClient creates a Groq client with a rotating key pool.
func NewClient(apiKeys []string, opts ...Option) Client {
	c := &httpClient{
		apiKeys: apiKeys,
		baseURL: defaultBaseURL,
		model:   defaultModel,
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

// Estimate asks the model for the company's revenue and headcount.
// When every configured key fails the sentinel "Not Found" estimate is
// returned instead of an error, so the enrichment batch keeps moving.
func (c *httpClient) Estimate(ctx context.Context, companyName, rawData string) (*model.FinancialEstimate, error) {
	if len(c.apiKeys) == 0 {
		return nil, eris.New("groq: no api keys configured")
	}

	var lastErr error
	for i, key := range c.apiKeys {
		est, err := c.estimateWithKey(ctx, companyName, rawData, key)
		if err == nil {
			return est, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, lastErr
		}
		if i < len(c.apiKeys)-1 {
			zap.L().Warn("groq key failed, rotating",
				zap.Int("key_index", i),
				zap.Error(err),
			)
		}
	}

	zap.L().Warn("all groq keys failed, returning sentinel estimate",
		zap.String("company", companyName),
		zap.Error(lastErr),
	)
	return &model.FinancialEstimate{
		AnnualRevenue:      model.NotFound,
		TotalEmployeeCount: model.NotFound,
	}, nil
}

func (c *httpClient) estimateWithKey(ctx context.Context, companyName, rawData, apiKey string) (*model.FinancialEstimate, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: analystPrompt},
			{Role: "user", Content: "Target Company: " + companyName + "\n\nSearch Snippets:\n" + rawData},
		},
		Temperature:    0,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "groq: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "groq: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "groq: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "groq: read response")
	}

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("groq: unexpected status %d: %s", resp.StatusCode, string(respBody))
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return nil, eris.Wrap(err, "groq: unmarshal response")
	}
	if len(chat.Choices) == 0 {
		return nil, eris.New("groq: empty completion")
	}

	var est model.FinancialEstimate
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &est); err != nil {
		return nil, eris.Wrap(err, "groq: parse estimate json")
	}
	return &est, nil
}
