package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeRowsReplacesByKey(t *testing.T) {
	existing := []map[string]string{
		{KeyColumn: "Acme", "meta_status": "Success"},
		{KeyColumn: "Beta Corp", "meta_status": "Success"},
	}
	incoming := []map[string]string{
		{KeyColumn: "Acme", "meta_status": "Success", "lead_scoring_lead_score": "42.5"},
	}

	header, merged := MergeRows(existing, incoming)

	assert.Equal(t, []string{KeyColumn, "meta_status", "lead_scoring_lead_score"}, header)
	assert.Len(t, merged, 2)

	assert.Equal(t, "Acme", merged[0][KeyColumn])
	assert.Equal(t, "42.5", merged[0]["lead_scoring_lead_score"])

	// Untouched rows keep their place and get new columns backfilled.
	assert.Equal(t, "Beta Corp", merged[1][KeyColumn])
	assert.Equal(t, "", merged[1]["lead_scoring_lead_score"])
}

func TestMergeRowsAppendsNewCompanies(t *testing.T) {
	existing := []map[string]string{
		{KeyColumn: "Acme", "industry": "Technology"},
	}
	incoming := []map[string]string{
		{KeyColumn: "Gamma Inc", "industry": "Logistics"},
	}

	header, merged := MergeRows(existing, incoming)

	assert.Equal(t, []string{KeyColumn, "industry"}, header)
	assert.Len(t, merged, 2)
	assert.Equal(t, "Gamma Inc", merged[1][KeyColumn])
}

func TestMergeRowsEmptySheet(t *testing.T) {
	incoming := []map[string]string{
		{KeyColumn: "Acme", "tagline": "We build things"},
	}

	header, merged := MergeRows(nil, incoming)

	assert.Equal(t, []string{KeyColumn, "tagline"}, header)
	assert.Len(t, merged, 1)
}
