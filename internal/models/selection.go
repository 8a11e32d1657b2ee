package models

import "strings"

// Selection is the set of active filter choices.
// OR within a multi-select field, AND across fields. An empty field means no filtering on it.
type Selection struct {
	Values        map[Field][]string `json:"values,omitempty"`
	YearMin       *int               `json:"year_min,omitempty"`
	YearMax       *int               `json:"year_max,omitempty"`
	SettlementMin *float64           `json:"settlement_min,omitempty"`
	SettlementMax *float64           `json:"settlement_max,omitempty"`
	Keyword       string             `json:"keyword,omitempty"`
}

// Has returns true if a categorical filter is set for the field.
func (s Selection) Has(f Field) bool {
	return len(s.Values[f]) > 0
}

// HasYearRange returns true if either year bound is set.
func (s Selection) HasYearRange() bool {
	return s.YearMin != nil || s.YearMax != nil
}

// HasSettlementRange returns true if either settlement bound is set.
func (s Selection) HasSettlementRange() bool {
	return s.SettlementMin != nil || s.SettlementMax != nil
}

// IsEmpty returns true if no filter of any kind is set.
func (s Selection) IsEmpty() bool {
	for _, vals := range s.Values {
		if len(vals) > 0 {
			return false
		}
	}
	return !s.HasYearRange() && !s.HasSettlementRange() && strings.TrimSpace(s.Keyword) == ""
}

// With returns a copy of the selection with the field's values replaced.
func (s Selection) With(f Field, values ...string) Selection {
	out := s
	out.Values = make(map[Field][]string, len(s.Values)+1)
	for k, v := range s.Values {
		out.Values[k] = v
	}
	if len(values) == 0 {
		delete(out.Values, f)
	} else {
		out.Values[f] = values
	}
	return out
}

// Selected reports whether value is selected for the field (case-insensitive).
func (s Selection) Selected(f Field, value string) bool {
	for _, v := range s.Values[f] {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// SortOrder orders a case listing.
type SortOrder string

const (
	SortYearDesc       SortOrder = "year_desc"
	SortYearAsc        SortOrder = "year_asc"
	SortNameAsc        SortOrder = "name_asc"
	SortSettlementDesc SortOrder = "settlement_desc"
)

// SortOrders lists the supported orders, default first.
var SortOrders = []SortOrder{SortYearDesc, SortYearAsc, SortNameAsc, SortSettlementDesc}

// Label returns the display label for a sort order.
func (o SortOrder) Label() string {
	switch o {
	case SortYearAsc:
		return "Year (oldest)"
	case SortNameAsc:
		return "Case Name (A-Z)"
	case SortSettlementDesc:
		return "Settlement (highest)"
	default:
		return "Year (newest)"
	}
}

// ParseSortOrder maps a query value to a SortOrder. Unknown values fall back to the default.
func ParseSortOrder(s string) (SortOrder, bool) {
	for _, o := range SortOrders {
		if string(o) == s {
			return o, true
		}
	}
	return SortYearDesc, s == ""
}

// View is a filtered slice of the dataset together with the selection that produced it.
type View struct {
	Selection Selection      `json:"selection"`
	Ignored   []*FilterError `json:"ignored_filters,omitempty"`
	Records   []CaseRecord   `json:"-"`
	Total     int            `json:"total"`
}

// Count returns the number of matching cases.
func (v View) Count() int {
	return len(v.Records)
}
