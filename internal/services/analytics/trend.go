package analytics

import (
	"strings"

	"github.com/bobmcallan/greenwash/internal/models"
)

// yearSpan returns the first and last year carried by any record.
func yearSpan(records []models.CaseRecord) (lo, hi int, ok bool) {
	for _, r := range records {
		if r.Year == nil {
			continue
		}
		if !ok || *r.Year < lo {
			lo = *r.Year
		}
		if !ok || *r.Year > hi {
			hi = *r.Year
		}
		ok = true
	}
	return lo, hi, ok
}

func emptySeries(lo, hi int) []models.TrendPoint {
	points := make([]models.TrendPoint, hi-lo+1)
	for i := range points {
		points[i].Year = lo + i
	}
	return points
}

// YearSeries counts cases per year in ascending order. Years between the first and
// last year with no case are present with a zero count. Nil when no record has a year.
func YearSeries(records []models.CaseRecord) []models.TrendPoint {
	lo, hi, ok := yearSpan(records)
	if !ok {
		return nil
	}
	points := emptySeries(lo, hi)
	for _, r := range records {
		if r.Year != nil {
			points[*r.Year-lo].Count++
		}
	}
	return points
}

// YearByField splits the yearly counts by a categorical field. Only values with at
// least one dated case get a series; series follow vocabulary order.
func YearByField(records []models.CaseRecord, field models.Field, vocab models.Vocabulary) []models.Series {
	lo, hi, ok := yearSpan(records)
	if !ok {
		return nil
	}

	values := vocab.Values(field)
	index := make(map[string]int, len(values))
	series := make([]models.Series, len(values))
	for i, v := range values {
		series[i] = models.Series{Name: v, Points: emptySeries(lo, hi)}
		index[strings.ToLower(v)] = i
	}

	used := make([]bool, len(values))
	for _, r := range records {
		if r.Year == nil {
			continue
		}
		i, ok := index[strings.ToLower(r.Field(field))]
		if !ok {
			continue
		}
		series[i].Points[*r.Year-lo].Count++
		used[i] = true
	}

	out := make([]models.Series, 0, len(series))
	for i, s := range series {
		if used[i] {
			out = append(out, s)
		}
	}
	return out
}

// SettlementByYear sums known settlements per year. Count is the number of settled
// amounts that year. Years without settlements within the span are zero.
func SettlementByYear(records []models.CaseRecord) []models.TrendPoint {
	lo, hi, ok := yearSpan(records)
	if !ok {
		return nil
	}
	points := emptySeries(lo, hi)
	found := false
	for _, r := range records {
		if r.Year == nil || r.Settlement == nil {
			continue
		}
		p := &points[*r.Year-lo]
		p.Count++
		p.Value += *r.Settlement
		found = true
	}
	if !found {
		return nil
	}
	return points
}
