package serpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobsPage(token string, titles ...string) map[string]any {
	jobs := make([]map[string]any, 0, len(titles))
	for _, title := range titles {
		jobs = append(jobs, map[string]any{
			"title":        title,
			"company_name": "Acme",
			"location":     "Mumbai, India",
			"description":  "desc",
			"via":          "via LinkedIn",
			"detected_extensions": map[string]any{
				"posted_at": "2 days ago",
			},
			"apply_options": []map[string]any{{"link": "https://apply.example.com"}},
		})
	}
	return map[string]any{
		"jobs_results":       jobs,
		"serpapi_pagination": map[string]any{"next_page_token": token},
	}
}

func TestSearchJobs_SinglePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "google_jobs", q.Get("engine"))
		assert.Equal(t, "salesforce admin", q.Get("q"))
		assert.Equal(t, "in", q.Get("gl"))
		assert.Equal(t, "en", q.Get("hl"))
		assert.Equal(t, "date_posted:week,employment_type:FULLTIME", q.Get("chips"))

		json.NewEncoder(w).Encode(jobsPage("", "Salesforce Admin"))
	}))
	defer srv.Close()

	c := NewClient([]string{"k1"}, WithBaseURL(srv.URL))
	jobs, err := c.SearchJobs(context.Background(), "salesforce admin", "Mumbai, India",
		Filters{DatePosted: "week", EmploymentType: "FULLTIME"}, 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Salesforce Admin", jobs[0].Title)
	assert.Equal(t, "https://apply.example.com", jobs[0].ApplyLink)
	assert.Equal(t, "2 days ago", jobs[0].Posted)
}

func TestSearchJobs_Pagination(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("next_page_token") == "" {
			json.NewEncoder(w).Encode(jobsPage("page-2", "Role A", "Role B"))
			return
		}
		json.NewEncoder(w).Encode(jobsPage("", "Role C"))
	}))
	defer srv.Close()

	c := NewClient([]string{"k1"}, WithBaseURL(srv.URL))
	jobs, err := c.SearchJobs(context.Background(), "q", "Austin, USA", Filters{}, 3)
	require.NoError(t, err)
	assert.Len(t, jobs, 3)
	assert.Equal(t, 2, calls)
}

func TestSearchJobs_LimitStopsEarly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(jobsPage("more", "Role A", "Role B", "Role C"))
	}))
	defer srv.Close()

	c := NewClient([]string{"k1"}, WithBaseURL(srv.URL))
	jobs, err := c.SearchJobs(context.Background(), "q", "London, UK", Filters{}, 2)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestSearchJobs_KeyFailover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") == "dead-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(jobsPage("", "Role A"))
	}))
	defer srv.Close()

	c := NewClient([]string{"dead-key", "live-key"}, WithBaseURL(srv.URL))
	jobs, err := c.SearchJobs(context.Background(), "q", "Berlin, Germany", Filters{}, 5)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestSearchJobs_NoKeys(t *testing.T) {
	c := NewClient(nil)
	_, err := c.SearchJobs(context.Background(), "q", "anywhere", Filters{}, 5)
	require.Error(t, err)
}

func TestLocaleFor(t *testing.T) {
	tests := []struct {
		location string
		gl, hl   string
	}{
		{"Bengaluru, India", "in", "en"},
		{"Paris, France", "fr", "fr"},
		{"Riyadh, Saudi Arabia", "sa", "ar"},
		{"somewhere unmapped", "us", "en"},
		{"", "us", "en"},
	}
	for _, tt := range tests {
		gl, hl := localeFor(tt.location)
		assert.Equal(t, tt.gl, gl, tt.location)
		assert.Equal(t, tt.hl, hl, tt.location)
	}
}
