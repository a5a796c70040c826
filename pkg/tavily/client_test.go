package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "key-1", body["api_key"])
		assert.Equal(t, "advanced", body["search_depth"])
		assert.Equal(t, "acme financials", body["query"])

		json.NewEncoder(w).Encode(SearchResponse{
			Results: []SearchResult{
				{Title: "Acme overview", URL: "https://example.com", Content: "snippet", RawContent: "full"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient([]string{"key-1"}, WithBaseURL(srv.URL))
	resp, err := c.Search(context.Background(), SearchRequest{Query: "acme financials", MaxResults: 20})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "full", resp.Results[0].RawContent)
}

func TestSearch_KeyRotation(t *testing.T) {
	var keysSeen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		key := body["api_key"].(string)
		keysSeen = append(keysSeen, key)

		if key == "dead-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(SearchResponse{Results: []SearchResult{{Title: "hit"}}})
	}))
	defer srv.Close()

	c := NewClient([]string{"dead-key", "live-key"}, WithBaseURL(srv.URL))
	resp, err := c.Search(context.Background(), SearchRequest{Query: "q"})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, []string{"dead-key", "live-key"}, keysSeen)
}

func TestSearch_AllKeysExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient([]string{"k1", "k2"}, WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), SearchRequest{Query: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all keys exhausted")
}

func TestSearch_NoKeys(t *testing.T) {
	c := NewClient(nil)
	_, err := c.Search(context.Background(), SearchRequest{Query: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no api keys")
}
