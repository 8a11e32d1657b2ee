package server

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/bobmcallan/greenwash/internal/models"
)

// Query parameter names for the non-categorical filters.
const (
	paramYearMin       = "year_min"
	paramYearMax       = "year_max"
	paramSettlementMin = "settlement_min"
	paramSettlementMax = "settlement_max"
	paramKeyword       = "q"
	paramSort          = "sort"
)

// ParseSelection reads the filter state from a query string. Values that cannot be
// parsed are returned as FilterErrors and left out of the selection; vocabulary
// checks happen later, against the dataset.
func ParseSelection(q url.Values) (models.Selection, models.SortOrder, []*models.FilterError) {
	var ignored []*models.FilterError
	sel := models.Selection{Values: make(map[models.Field][]string)}

	for _, f := range models.CategoricalFields {
		var values []string
		for _, v := range q[string(f)] {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			sel.Values[f] = values
		}
	}

	sel.YearMin = parseIntParam(q, paramYearMin, &ignored)
	sel.YearMax = parseIntParam(q, paramYearMax, &ignored)
	sel.SettlementMin = parseAmountParam(q, paramSettlementMin, &ignored)
	sel.SettlementMax = parseAmountParam(q, paramSettlementMax, &ignored)
	sel.Keyword = strings.TrimSpace(q.Get(paramKeyword))

	order, ok := models.ParseSortOrder(q.Get(paramSort))
	if !ok {
		ignored = append(ignored, &models.FilterError{Field: paramSort, Value: q.Get(paramSort), Reason: "unknown sort order"})
	}

	return sel, order, ignored
}

func parseIntParam(q url.Values, name string, ignored *[]*models.FilterError) *int {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*ignored = append(*ignored, &models.FilterError{Field: name, Value: raw, Reason: "not a whole number"})
		return nil
	}
	return &n
}

func parseAmountParam(q url.Values, name string, ignored *[]*models.FilterError) *float64 {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil
	}
	clean := strings.NewReplacer(",", "", "$", "").Replace(raw)
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		*ignored = append(*ignored, &models.FilterError{Field: name, Value: raw, Reason: "not a dollar amount"})
		return nil
	}
	return &f
}

// EncodeSelection writes a selection back to query form, so links and chart
// images reproduce the current view. The default sort order is omitted.
func EncodeSelection(sel models.Selection, order models.SortOrder) url.Values {
	q := url.Values{}
	for _, f := range models.CategoricalFields {
		for _, v := range sel.Values[f] {
			q.Add(string(f), v)
		}
	}
	if sel.YearMin != nil {
		q.Set(paramYearMin, strconv.Itoa(*sel.YearMin))
	}
	if sel.YearMax != nil {
		q.Set(paramYearMax, strconv.Itoa(*sel.YearMax))
	}
	if sel.SettlementMin != nil {
		q.Set(paramSettlementMin, strconv.FormatFloat(*sel.SettlementMin, 'f', -1, 64))
	}
	if sel.SettlementMax != nil {
		q.Set(paramSettlementMax, strconv.FormatFloat(*sel.SettlementMax, 'f', -1, 64))
	}
	if sel.Keyword != "" {
		q.Set(paramKeyword, sel.Keyword)
	}
	if order != "" && order != models.SortYearDesc {
		q.Set(paramSort, string(order))
	}
	return q
}

// withQuery appends an encoded query to a path.
func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
