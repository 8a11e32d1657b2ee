package chart

import (
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/bobmcallan/greenwash/internal/models"
)

func bucketValues(buckets []models.Bucket) []gochart.Value {
	values := make([]gochart.Value, len(buckets))
	for i, b := range buckets {
		values[i] = gochart.Value{
			Label: truncate(b.Label),
			Value: float64(b.Count),
			Style: gochart.Style{FillColor: paletteColor(i), StrokeColor: paletteColor(i)},
		}
	}
	return values
}

// yearValues turns a yearly series into bars; byValue selects Value over Count.
func yearValues(points []models.TrendPoint, byValue bool) []gochart.Value {
	values := make([]gochart.Value, len(points))
	for i, p := range points {
		v := float64(p.Count)
		if byValue {
			v = p.Value
		}
		values[i] = gochart.Value{
			Label: fmt.Sprintf("%d", p.Year),
			Value: v,
			Style: gochart.Style{FillColor: paletteColor(0), StrokeColor: paletteColor(0)},
		}
	}
	return values
}

func settlementValues(entries []models.SettlementEntry, n int) []gochart.Value {
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	values := make([]gochart.Value, len(entries))
	for i, e := range entries {
		values[i] = gochart.Value{
			Label: truncate(e.Name),
			Value: e.Amount,
			Style: gochart.Style{FillColor: paletteColor(1), StrokeColor: paletteColor(0)},
		}
	}
	return values
}
