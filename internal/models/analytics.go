package models

// NoneLabel is the bucket for cases whose field value is blank or outside the vocabulary.
const NoneLabel = "(none)"

// Bucket is the case count for one categorical value.
type Bucket struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Value float64 `json:"value,omitempty"`
}

// SettlementStats summarizes the known settlement amounts of a set of cases.
// HasData is false when no case carries a settlement; every number is then zero.
type SettlementStats struct {
	HasData bool    `json:"has_data"`
	Count   int     `json:"count"`
	Sum     float64 `json:"sum"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// TrendPoint is one year of a time series.
type TrendPoint struct {
	Year  int     `json:"year"`
	Count int     `json:"count"`
	Value float64 `json:"value,omitempty"`
}

// Series is a named time series.
type Series struct {
	Name   string       `json:"name"`
	Points []TrendPoint `json:"points"`
}

// SettlementEntry is one case in a top-settlements ranking.
type SettlementEntry struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// ClaimSummaryRow is the per-claim-type line of the summary table.
type ClaimSummaryRow struct {
	ClaimType       string  `json:"claim_type"`
	Cases           int     `json:"cases"`
	SettlementTotal float64 `json:"settlement_total"`
}

// StatusShareRow is a status group with its share of the cases.
type StatusShareRow struct {
	Status  string  `json:"status"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Headline holds the top-of-page metric cards.
type Headline struct {
	Total           int     `json:"total"`
	Settled         int     `json:"settled"`
	Pending         int     `json:"pending"`
	Dismissed       int     `json:"dismissed"`
	SettlementTotal float64 `json:"settlement_total"`
}

// Overview is the full analytics result for a filtered view.
type Overview struct {
	Headline          Headline          `json:"headline"`
	ByYear            []TrendPoint      `json:"by_year"`
	ByStatus          []Bucket          `json:"by_status"`
	ByClaimType       []Bucket          `json:"by_claim_type"`
	ByCategory        []Bucket          `json:"by_category"`
	ByJurisdiction    []Bucket          `json:"by_jurisdiction"`
	ByIndustry        []Bucket          `json:"by_industry"`
	ByChannel         []Bucket          `json:"by_channel"`
	Settlements       SettlementStats   `json:"settlements"`
	TopSettlements    []SettlementEntry `json:"top_settlements"`
	ClaimTrend        []Series          `json:"claim_trend"`
	SettlementsByYear []TrendPoint      `json:"settlements_by_year"`
	ClaimSummary      []ClaimSummaryRow `json:"claim_summary"`
	StatusShare       []StatusShareRow  `json:"status_share"`
}
