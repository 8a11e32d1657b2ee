package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/greenwash/internal/common"
	"github.com/bobmcallan/greenwash/internal/models"
)

var pngMagic = []byte("\x89PNG")

func newTestService() *Service {
	return NewService(common.ChartsConfig{
		Width:          640,
		Height:         350,
		TopIndustries:  3,
		TopJuris:       3,
		TopSettlements: 3,
	}, common.NewSilentLogger())
}

func sampleOverview() models.Overview {
	return models.Overview{
		ByYear: []models.TrendPoint{
			{Year: 2019, Count: 2},
			{Year: 2020, Count: 0},
			{Year: 2021, Count: 5},
		},
		ByClaimType: []models.Bucket{
			{Label: "Recyclability", Count: 4},
			{Label: "Carbon Neutral", Count: 3},
			{Label: "Vegan", Count: 0},
		},
		ByIndustry: []models.Bucket{
			{Label: "Food & Beverage", Count: 3},
			{Label: "Apparel", Count: 2},
			{Label: "Airlines", Count: 1},
			{Label: "Energy", Count: 1},
		},
		ByJurisdiction: []models.Bucket{
			{Label: "California", Count: 4},
			{Label: "New York", Count: 3},
		},
		StatusShare: []models.StatusShareRow{
			{Status: models.StatusSettled, Count: 4, Percent: 57.1},
			{Status: models.StatusPending, Count: 3, Percent: 42.9},
		},
		TopSettlements: []models.SettlementEntry{
			{ID: "1", Name: "A very long case name that needs truncating", Amount: 2_500_000},
			{ID: "2", Name: "Short", Amount: 100_000},
		},
		ClaimTrend: []models.Series{
			{Name: "Recyclability", Points: []models.TrendPoint{{Year: 2019, Count: 1}, {Year: 2020}, {Year: 2021, Count: 3}}},
			{Name: "Carbon Neutral", Points: []models.TrendPoint{{Year: 2019, Count: 1}, {Year: 2020}, {Year: 2021, Count: 2}}},
		},
		SettlementsByYear: []models.TrendPoint{
			{Year: 2019, Count: 1, Value: 100_000},
			{Year: 2020},
			{Year: 2021, Count: 1, Value: 2_500_000},
		},
	}
}

func TestRender_AllChartsPNG(t *testing.T) {
	svc := newTestService()
	ov := sampleOverview()

	for _, name := range models.ChartNames {
		t.Run(string(name), func(t *testing.T) {
			data, err := svc.Render(name, models.ChartPNG, ov)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, pngMagic), "expected PNG output")
		})
	}
}

func TestRender_SVG(t *testing.T) {
	svc := newTestService()

	data, err := svc.Render(models.ChartClaimType, models.ChartSVG, sampleOverview())

	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestRender_EmptyDataRendersPlaceholder(t *testing.T) {
	svc := newTestService()

	for _, name := range models.ChartNames {
		t.Run(string(name), func(t *testing.T) {
			data, err := svc.Render(name, models.ChartPNG, models.Overview{})
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, pngMagic))
		})
	}
}

func TestRender_AllZeroCountsRendersPlaceholder(t *testing.T) {
	svc := newTestService()
	ov := models.Overview{ByClaimType: []models.Bucket{{Label: "Vegan"}}}

	data, err := svc.Render(models.ChartClaimType, models.ChartSVG, ov)

	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestRender_UnknownChart(t *testing.T) {
	_, err := newTestService().Render(models.ChartName("pie"), models.ChartPNG, sampleOverview())
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Short", truncate("Short"))
	got := truncate("A very long case name that needs truncating")
	assert.Len(t, []rune(got), maxLabelLen)
	assert.Contains(t, got, "...")
}

func TestSettlementValues_LimitsLength(t *testing.T) {
	entries := sampleOverview().TopSettlements
	assert.Len(t, settlementValues(entries, 1), 1)
	assert.Len(t, settlementValues(entries, 0), 2)
}
