package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/greenwash/internal/models"
)

func TestFilterQuery(t *testing.T) {
	q, err := filterQuery([]string{"claim_type=Recyclability", "claim_type=Carbon Neutral", "year_min=2020"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Recyclability", "Carbon Neutral"}, q["claim_type"])
	assert.Equal(t, "2020", q.Get("year_min"))

	_, err = filterQuery([]string{"claim_type"})
	assert.Error(t, err)
}

func TestRenderSummary(t *testing.T) {
	view := models.View{
		Records: make([]models.CaseRecord, 2),
		Total:   5,
		Ignored: []*models.FilterError{{Field: "status", Value: "Won", Reason: "not in vocabulary"}},
	}
	ov := models.Overview{
		Headline:    models.Headline{Total: 2, Settled: 1, Pending: 1, SettlementTotal: 2_500_000},
		Settlements: models.SettlementStats{HasData: true, Count: 1, Sum: 2_500_000, Mean: 2_500_000, Median: 2_500_000, Min: 2_500_000, Max: 2_500_000},
		ByClaimType: []models.Bucket{{Label: "Recyclability", Count: 2}, {Label: "Vegan"}},
	}

	var buf bytes.Buffer
	renderSummary(&buf, view, ov, 5)
	out := buf.String()

	assert.Contains(t, out, "Greenwashing Litigation Summary")
	assert.Contains(t, out, "2 of 5")
	assert.Contains(t, out, "$2.5M")
	assert.Contains(t, out, "Recyclability")
	assert.NotContains(t, out, "Vegan")
	assert.Contains(t, out, `status="Won" ignored`)
	assert.Contains(t, out, "No cases")
}
