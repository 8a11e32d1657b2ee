// Package analytics aggregates a filtered case table into counts, settlement
// statistics and time series for the dashboard.
package analytics

import (
	"sort"
	"strings"

	"github.com/bobmcallan/greenwash/internal/models"
)

// CountBy counts records per vocabulary value of field. Every vocabulary value is
// present, in vocabulary order, with a zero count when no record carries it.
// Records whose value is blank or outside the vocabulary are counted under
// models.NoneLabel, which is appended only when non-zero. Counts sum to len(records).
func CountBy(records []models.CaseRecord, field models.Field, vocab models.Vocabulary) []models.Bucket {
	values := vocab.Values(field)
	index := make(map[string]int, len(values))
	buckets := make([]models.Bucket, len(values))
	for i, v := range values {
		buckets[i] = models.Bucket{Label: v}
		index[strings.ToLower(v)] = i
	}

	none := 0
	for _, r := range records {
		i, ok := index[strings.ToLower(r.Field(field))]
		if !ok {
			none++
			continue
		}
		buckets[i].Count++
	}
	if none > 0 {
		buckets = append(buckets, models.Bucket{Label: models.NoneLabel, Count: none})
	}
	return buckets
}

// TopBuckets returns the n largest buckets, highest count first, ties alphabetical.
// Empty buckets and the (none) bucket are left out. n <= 0 keeps every non-empty bucket.
func TopBuckets(buckets []models.Bucket, n int) []models.Bucket {
	out := make([]models.Bucket, 0, len(buckets))
	for _, b := range buckets {
		if b.Count > 0 && b.Label != models.NoneLabel {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.ToLower(out[i].Label) < strings.ToLower(out[j].Label)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Settlements summarizes the known settlement amounts. With no known amount the
// result has HasData false and every figure zero.
func Settlements(records []models.CaseRecord) models.SettlementStats {
	var amounts []float64
	for _, r := range records {
		if r.Settlement != nil {
			amounts = append(amounts, *r.Settlement)
		}
	}
	if len(amounts) == 0 {
		return models.SettlementStats{}
	}

	sort.Float64s(amounts)
	stats := models.SettlementStats{
		HasData: true,
		Count:   len(amounts),
		Min:     amounts[0],
		Max:     amounts[len(amounts)-1],
	}
	for _, a := range amounts {
		stats.Sum += a
	}
	stats.Mean = stats.Sum / float64(len(amounts))

	mid := len(amounts) / 2
	if len(amounts)%2 == 0 {
		stats.Median = (amounts[mid-1] + amounts[mid]) / 2
	} else {
		stats.Median = amounts[mid]
	}
	return stats
}

// TopSettlements returns the n cases with the largest settlements, largest first.
// Ties keep dataset order.
func TopSettlements(records []models.CaseRecord, n int) []models.SettlementEntry {
	var entries []models.SettlementEntry
	for _, r := range records {
		if r.Settlement != nil && *r.Settlement > 0 {
			entries = append(entries, models.SettlementEntry{ID: r.ID, Name: r.Name, Amount: *r.Settlement})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount > entries[j].Amount
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// ClaimSummary totals cases and settlements per claim type, most cases first.
// Claim types with no case in records are included with zero totals.
func ClaimSummary(records []models.CaseRecord, vocab models.Vocabulary) []models.ClaimSummaryRow {
	buckets := CountBy(records, models.FieldClaimType, vocab)
	rows := make([]models.ClaimSummaryRow, len(buckets))
	index := make(map[string]int, len(buckets))
	for i, b := range buckets {
		rows[i] = models.ClaimSummaryRow{ClaimType: b.Label, Cases: b.Count}
		index[strings.ToLower(b.Label)] = i
	}
	for _, r := range records {
		i, ok := index[strings.ToLower(r.ClaimType)]
		if !ok {
			i = index[strings.ToLower(models.NoneLabel)]
		}
		rows[i].SettlementTotal += r.SettlementValue()
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Cases > rows[j].Cases
	})
	return rows
}

// StatusShare lists the status groups present in records with their share of the total.
func StatusShare(records []models.CaseRecord) []models.StatusShareRow {
	if len(records) == 0 {
		return nil
	}
	buckets := TopBuckets(CountBy(records, models.FieldStatus, models.Vocabulary{models.FieldStatus: models.StatusGroups}), 0)
	rows := make([]models.StatusShareRow, len(buckets))
	for i, b := range buckets {
		rows[i] = models.StatusShareRow{
			Status:  b.Label,
			Count:   b.Count,
			Percent: float64(b.Count) * 100 / float64(len(records)),
		}
	}
	return rows
}

// Headline computes the metric cards shown above the charts.
func Headline(records []models.CaseRecord) models.Headline {
	h := models.Headline{Total: len(records)}
	for _, r := range records {
		switch {
		case r.StatusGroup == models.StatusSettled:
			h.Settled++
		case r.StatusGroup == models.StatusPending:
			h.Pending++
		case models.IsDismissed(r.StatusGroup):
			h.Dismissed++
		}
		h.SettlementTotal += r.SettlementValue()
	}
	return h
}
