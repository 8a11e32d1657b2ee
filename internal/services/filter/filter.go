// Package filter applies filter selections to the case table.
package filter

import (
	"strings"

	"github.com/bobmcallan/greenwash/internal/models"
)

// NewView validates sel against the dataset vocabulary and applies it.
func NewView(ds *models.Dataset, sel models.Selection) models.View {
	valid, ignored := Validate(sel, ds.Vocabulary)
	return models.View{
		Selection: valid,
		Ignored:   ignored,
		Records:   Apply(ds.Records, valid),
		Total:     ds.Len(),
	}
}

// Validate drops categorical values outside the vocabulary and swaps inverted ranges.
// Dropped values are reported as FilterErrors; they never fail the request.
func Validate(sel models.Selection, vocab models.Vocabulary) (models.Selection, []*models.FilterError) {
	var ignored []*models.FilterError

	out := sel
	out.Values = make(map[models.Field][]string, len(sel.Values))
	for f, values := range sel.Values {
		if _, known := vocab[f]; !known {
			for _, v := range values {
				ignored = append(ignored, &models.FilterError{Field: string(f), Value: v, Reason: "unknown field"})
			}
			continue
		}
		var kept []string
		for _, v := range values {
			if strings.TrimSpace(v) == "" {
				continue
			}
			canonical, ok := vocab.Canonical(f, v)
			if !ok {
				ignored = append(ignored, &models.FilterError{Field: string(f), Value: v, Reason: "not in vocabulary"})
				continue
			}
			kept = appendUnique(kept, canonical)
		}
		if len(kept) > 0 {
			out.Values[f] = kept
		}
	}

	if out.YearMin != nil && out.YearMax != nil && *out.YearMin > *out.YearMax {
		out.YearMin, out.YearMax = out.YearMax, out.YearMin
	}
	if out.SettlementMin != nil && out.SettlementMax != nil && *out.SettlementMin > *out.SettlementMax {
		out.SettlementMin, out.SettlementMax = out.SettlementMax, out.SettlementMin
	}
	out.Keyword = strings.TrimSpace(out.Keyword)

	return out, ignored
}

// Apply returns the records matching every active predicate of sel.
// Fields are AND-combined; values within a field are OR-combined.
// The input is never modified and the result keeps the input order.
func Apply(records []models.CaseRecord, sel models.Selection) []models.CaseRecord {
	sets := make(map[models.Field]map[string]bool)
	for f, allowed := range sel.Values {
		if len(allowed) > 0 {
			sets[f] = toLowerSet(allowed)
		}
	}
	keyword := strings.ToLower(strings.TrimSpace(sel.Keyword))

	out := make([]models.CaseRecord, 0, len(records))
	for _, r := range records {
		if matches(r, sets, sel, keyword) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record satisfies sel.
func Matches(r models.CaseRecord, sel models.Selection) bool {
	sets := make(map[models.Field]map[string]bool)
	for f, allowed := range sel.Values {
		if len(allowed) > 0 {
			sets[f] = toLowerSet(allowed)
		}
	}
	return matches(r, sets, sel, strings.ToLower(strings.TrimSpace(sel.Keyword)))
}

func matches(r models.CaseRecord, sets map[models.Field]map[string]bool, sel models.Selection, keyword string) bool {
	for f, set := range sets {
		if !set[strings.ToLower(r.Field(f))] {
			return false
		}
	}

	if sel.HasYearRange() {
		if r.Year == nil {
			return false
		}
		if sel.YearMin != nil && *r.Year < *sel.YearMin {
			return false
		}
		if sel.YearMax != nil && *r.Year > *sel.YearMax {
			return false
		}
	}

	if sel.HasSettlementRange() {
		if r.Settlement == nil {
			return false
		}
		if sel.SettlementMin != nil && *r.Settlement < *sel.SettlementMin {
			return false
		}
		if sel.SettlementMax != nil && *r.Settlement > *sel.SettlementMax {
			return false
		}
	}

	if keyword != "" && !containsKeyword(r, keyword) {
		return false
	}
	return true
}

// containsKeyword searches the free-text fields a reader would recognise a case by.
func containsKeyword(r models.CaseRecord, keyword string) bool {
	for _, text := range []string{r.Quote, r.Name, r.Company, r.Summary} {
		if strings.Contains(strings.ToLower(text), keyword) {
			return true
		}
	}
	return false
}

func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// DependentValues narrows the child field's vocabulary to the values that occur on
// records whose parent field matches one of parentValues. Values already selected on
// the child stay listed so they can be cleared. With no parent values the vocabulary
// is returned unchanged.
func DependentValues(records []models.CaseRecord, vocab []string, parent models.Field, parentValues []string, child models.Field, selected []string) []string {
	if len(parentValues) == 0 {
		return vocab
	}
	parents := toLowerSet(parentValues)
	present := toLowerSet(selected)
	for _, r := range records {
		if parents[strings.ToLower(r.Field(parent))] {
			present[strings.ToLower(r.Field(child))] = true
		}
	}

	var out []string
	for _, v := range vocab {
		if present[strings.ToLower(v)] {
			out = append(out, v)
		}
	}
	return out
}
