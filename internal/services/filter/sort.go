package filter

import (
	"sort"
	"strings"

	"github.com/bobmcallan/greenwash/internal/models"
)

// Sort returns a copy of records in the given order. Ties keep their input order;
// cases without a year or settlement sort last.
func Sort(records []models.CaseRecord, order models.SortOrder) []models.CaseRecord {
	out := make([]models.CaseRecord, len(records))
	copy(out, records)

	switch order {
	case models.SortYearAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return lessOptional(out[i].Year, out[j].Year, func(a, b int) bool { return a < b })
		})
	case models.SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case models.SortSettlementDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return lessOptional(out[i].Settlement, out[j].Settlement, func(a, b float64) bool { return a > b })
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return lessOptional(out[i].Year, out[j].Year, func(a, b int) bool { return a > b })
		})
	}
	return out
}

func lessOptional[T int | float64](a, b *T, less func(T, T) bool) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return less(*a, *b)
	}
}
