package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips markdown images",
			in:   "Acme ![logo](https://cdn.acme.com/logo.png) builds tools",
			want: "Acme builds tools",
		},
		{
			name: "keeps link display text",
			in:   "See [Acme Corp](https://acme.com/about) for details",
			want: "See Acme Corp for details",
		},
		{
			name: "drops raw urls",
			in:   "Visit https://acme.com/pricing today",
			want: "Visit today",
		},
		{
			name: "collapses whitespace runs",
			in:   "Acme\n\n  builds\t\ttools  ",
			want: "Acme builds tools",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Normalize(got), "normalize must be idempotent")
		})
	}
}

func TestNormalizeKeepLinks(t *testing.T) {
	in := "![img](x.png) [Acme Corp](https://acme.com) raised funding https://news.example.com/a"
	got := NormalizeKeepLinks(in)
	assert.Contains(t, got, "[Acme Corp](")
	assert.NotContains(t, got, "img")
	assert.NotContains(t, got, "news.example.com")
}

func TestExtractSentenceContaining(t *testing.T) {
	text := "Acme builds tools. It operates in the fintech industry. Founded in 2015."

	tests := []struct {
		name     string
		keywords []string
		want     string
	}{
		{
			name:     "first matching sentence",
			keywords: []string{"industry"},
			want:     "It operates in the fintech industry",
		},
		{
			name:     "case insensitive",
			keywords: []string{"FINTECH"},
			want:     "It operates in the fintech industry",
		},
		{
			name:     "no match",
			keywords: []string{"aerospace"},
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSentenceContaining(text, tt.keywords))
		})
	}
}
