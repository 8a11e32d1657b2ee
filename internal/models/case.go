package models

import (
	"sort"
	"strings"
	"time"
)

// CaseRecord is one row of litigation data representing a single legal case.
type CaseRecord struct {
	ID  string `json:"id"`
	Row int    `json:"row"` // 1-based data row in the source file

	Name             string `json:"name"`
	Company          string `json:"company"`
	DefendantType    string `json:"defendant_type,omitempty"`
	PlaintiffLawFirm string `json:"plaintiff_law_firm,omitempty"`

	ClaimType    string `json:"claim_type"`
	Category     string `json:"category"`
	Status       string `json:"status"`
	StatusGroup  string `json:"status_group"`
	Jurisdiction string `json:"jurisdiction"`
	Industry     string `json:"industry,omitempty"`
	Channel      string `json:"channel,omitempty"`
	Year         *int   `json:"year,omitempty"`

	Settlement     *float64 `json:"settlement,omitempty"`
	SettlementText string   `json:"settlement_text,omitempty"`

	Ruling              string `json:"ruling,omitempty"`
	Outcome             string `json:"outcome,omitempty"`
	Summary             string `json:"summary,omitempty"`
	Quote               string `json:"quote,omitempty"`
	EnvironmentalClaims string `json:"environmental_claims,omitempty"`

	Court               string `json:"court,omitempty"`
	DocketNumber        string `json:"docket_number,omitempty"`
	StateLawCited       string `json:"state_law_cited,omitempty"`
	ReliefSought        string `json:"relief_sought,omitempty"`
	ClassSize           string `json:"class_size,omitempty"`
	CertificationMisuse string `json:"certification_misuse,omitempty"`
	KeyDates            string `json:"key_dates,omitempty"`
	ClaimLocation       string `json:"claim_location,omitempty"`
	Confidence          string `json:"confidence,omitempty"`

	RulingPDFURL string   `json:"ruling_pdf_url,omitempty"`
	ComplaintURL string   `json:"complaint_url,omitempty"`
	Sources      []string `json:"sources,omitempty"`
	Verified     bool     `json:"verified"`
}

// Parties lists the named parties on the case, company first.
func (c CaseRecord) Parties() []string {
	var parties []string
	for _, p := range []string{c.Company, c.DefendantType, c.PlaintiffLawFirm} {
		if p != "" {
			parties = append(parties, p)
		}
	}
	return parties
}

// HasSettlement reports whether a settlement amount is known.
func (c CaseRecord) HasSettlement() bool {
	return c.Settlement != nil
}

// SettlementValue returns the settlement amount or 0 when unknown.
func (c CaseRecord) SettlementValue() float64 {
	if c.Settlement == nil {
		return 0
	}
	return *c.Settlement
}

// Field returns the value of a categorical field.
func (c CaseRecord) Field(f Field) string {
	switch f {
	case FieldClaimType:
		return c.ClaimType
	case FieldCategory:
		return c.Category
	case FieldStatus:
		return c.StatusGroup
	case FieldJurisdiction:
		return c.Jurisdiction
	case FieldIndustry:
		return c.Industry
	case FieldChannel:
		return c.Channel
	}
	return ""
}

// Field names a categorical attribute of a case.
type Field string

const (
	FieldClaimType    Field = "claim_type"
	FieldCategory     Field = "category"
	FieldStatus       Field = "status"
	FieldJurisdiction Field = "jurisdiction"
	FieldIndustry     Field = "industry"
	FieldChannel      Field = "channel"
)

// CategoricalFields is the set of filterable categorical fields, in display order.
var CategoricalFields = []Field{
	FieldClaimType,
	FieldCategory,
	FieldStatus,
	FieldJurisdiction,
	FieldIndustry,
	FieldChannel,
}

// Label returns the display label for a field.
func (f Field) Label() string {
	switch f {
	case FieldClaimType:
		return "Claim Type"
	case FieldCategory:
		return "Sub-Category"
	case FieldStatus:
		return "Status"
	case FieldJurisdiction:
		return "Jurisdiction"
	case FieldIndustry:
		return "Industry Sector"
	case FieldChannel:
		return "Channel"
	}
	return string(f)
}

// Status group constants.
const (
	StatusSettled                   = "Settled"
	StatusPending                   = "Pending"
	StatusDismissedWithoutPrejudice = "Dismissed (without prejudice)"
	StatusDismissed                 = "Dismissed"
	StatusVoluntarilyDismissed      = "Voluntarily Dismissed"
	StatusMTDDenied                 = "MTD Denied"
	StatusMTDGranted                = "MTD Granted"
	StatusOnAppeal                  = "On Appeal"
	StatusClassCertified            = "Class Certified"
	StatusUnknown                   = "Unknown"
	StatusOther                     = "Other"
)

// StatusGroups is the fixed status vocabulary.
var StatusGroups = []string{
	StatusSettled,
	StatusPending,
	StatusDismissed,
	StatusDismissedWithoutPrejudice,
	StatusVoluntarilyDismissed,
	StatusMTDDenied,
	StatusMTDGranted,
	StatusOnAppeal,
	StatusClassCertified,
	StatusUnknown,
	StatusOther,
}

// IsDismissed reports whether a status group is one of the dismissal outcomes.
func IsDismissed(statusGroup string) bool {
	return strings.Contains(statusGroup, StatusDismissed)
}

// Vocabulary holds the allowed values of each categorical field.
type Vocabulary map[Field][]string

// Values returns the vocabulary for a field.
func (v Vocabulary) Values(f Field) []string {
	return v[f]
}

// Canonical returns the vocabulary spelling of value, matched case-insensitively.
func (v Vocabulary) Canonical(f Field, value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, known := range v[f] {
		if strings.EqualFold(known, value) {
			return known, true
		}
	}
	return "", false
}

// Contains reports whether value is part of the field's vocabulary.
func (v Vocabulary) Contains(f Field, value string) bool {
	_, ok := v.Canonical(f, value)
	return ok
}

// MergeVocabulary unions the given value lists, dropping blanks and
// case-insensitive duplicates, and sorts the result alphabetically.
func MergeVocabulary(lists ...[]string) []string {
	seen := make(map[string]bool)
	var merged []string
	for _, list := range lists {
		for _, v := range list {
			v = strings.TrimSpace(v)
			key := strings.ToLower(v)
			if v == "" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, v)
		}
	}
	sort.Slice(merged, func(i, j int) bool {
		return strings.ToLower(merged[i]) < strings.ToLower(merged[j])
	})
	return merged
}

// Dataset is the immutable in-memory case table.
type Dataset struct {
	Path       string       `json:"path"`
	LoadedAt   time.Time    `json:"loaded_at"`
	Records    []CaseRecord `json:"-"`
	Vocabulary Vocabulary   `json:"vocabulary"`
	HasYear    bool         `json:"has_year"`

	byID map[string]int
}

// NewDataset indexes records by ID. Records must not be modified afterwards.
func NewDataset(path string, records []CaseRecord, vocab Vocabulary) *Dataset {
	d := &Dataset{
		Path:       path,
		LoadedAt:   time.Now(),
		Records:    records,
		Vocabulary: vocab,
		byID:       make(map[string]int, len(records)),
	}
	for i, r := range records {
		d.byID[r.ID] = i
		if r.Year != nil {
			d.HasYear = true
		}
	}
	return d
}

// Len returns the number of cases.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Case looks up a case by ID.
func (d *Dataset) Case(id string) (CaseRecord, bool) {
	i, ok := d.byID[id]
	if !ok {
		return CaseRecord{}, false
	}
	return d.Records[i], true
}

// YearRange returns the earliest and latest case year. ok is false when no case has a year.
func (d *Dataset) YearRange() (lo, hi int, ok bool) {
	for _, r := range d.Records {
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
