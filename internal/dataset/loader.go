// Package dataset loads the greenwashing case CSV into an immutable in-memory table.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/bobmcallan/greenwash/internal/models"
)

// Column names in the source CSV.
const (
	ColCaseName            = "case_name"
	ColCompany             = "Product/Company"
	ColDefendantType       = "defendant_type"
	ColPlaintiffLawFirm    = "plaintiff_law_firm"
	ColClaimType           = "claim_type"
	ColCategory            = "sub_category"
	ColStatus              = "current_status"
	ColJurisdiction        = "jurisdiction"
	ColSettlement          = "settlement_amount"
	ColRuling              = "ruling_description"
	ColSources             = "sources"
	ColYear                = "Year"
	ColQuote               = "quote"
	ColIndustry            = "industry_sector"
	ColChannel             = "channel"
	ColCourt               = "court"
	ColDocket              = "docket_number"
	ColStateLaw            = "state_law_cited"
	ColRelief              = "relief_sought"
	ColClassSize           = "class_size"
	ColCertificationMisuse = "certification_misuse"
	ColKeyDates            = "key_dates"
	ColClaimLocation       = "claim_location"
	ColConfidence          = "confidence"
	ColSummary             = "summary"
	ColOutcome             = "Outcome"
	ColRulingPDF           = "ruling_pdf_url"
	ColComplaintURL        = "Product/Company URL"
	ColEnvClaims           = "Environmental Claims/Allegations"
	ColVerified            = "verified_independently"
)

// RequiredColumns must be present in the header.
var RequiredColumns = []string{
	ColCaseName,
	ColCompany,
	ColClaimType,
	ColCategory,
	ColStatus,
	ColJurisdiction,
	ColSettlement,
	ColRuling,
	ColSources,
}

// caseNamespace scopes case IDs so they are stable across restarts.
var caseNamespace = uuid.MustParse("5b0e4f3c-2f7a-4d1e-9c6b-8a1d2e3f4a5b")

// CaseID derives the stable ID for a case name.
func CaseID(name string) string {
	return uuid.NewSHA1(caseNamespace, []byte(strings.ToLower(strings.TrimSpace(name)))).String()
}

// Load reads the dataset at path. Any failure is a *models.LoadError.
func Load(path string, opts ...Option) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		reason := "cannot open file"
		if errors.Is(err, os.ErrNotExist) {
			reason = "file not found"
		}
		return nil, &models.LoadError{Path: path, Reason: reason, Err: err}
	}
	defer f.Close()

	ds, err := parse(f, path, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// Parse reads a dataset from r. Any failure is a *models.LoadError.
func Parse(r io.Reader, opts ...Option) (*models.Dataset, error) {
	return parse(r, "", applyOptions(opts))
}

type row struct {
	cells []string
	index map[string]int
}

func (r row) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return cleanText(r.cells[i])
}

func parse(r io.Reader, path string, cfg *config) (*models.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, &models.LoadError{Path: path, Reason: "file is empty"}
	}
	if err != nil {
		return nil, &models.LoadError{Path: path, Reason: "cannot read header", Err: err}
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		index[h] = i
	}
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &models.LoadError{Path: path, Column: col, Reason: "missing required column"}
		}
	}

	var records []models.CaseRecord
	seen := make(map[string]int)
	for n := 1; ; n++ {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &models.LoadError{Path: path, Row: n, Reason: "malformed row", Err: err}
		}

		rec, err := buildRecord(row{cells: cells, index: index}, n)
		if err != nil {
			var le *models.LoadError
			if errors.As(err, &le) {
				le.Path = path
			}
			return nil, err
		}

		if first, dup := seen[rec.ID]; dup {
			return nil, &models.LoadError{
				Path:   path,
				Row:    n,
				Column: ColCaseName,
				Reason: fmt.Sprintf("duplicate case %q (first seen on row %d)", rec.Name, first),
			}
		}
		seen[rec.ID] = n

		if rec.HasSettlement() && rec.StatusGroup != models.StatusSettled {
			cfg.logger.Warn().
				Int("row", n).
				Str("case", rec.Name).
				Str("status", rec.Status).
				Msg("Settlement recorded on an unresolved case")
		}

		records = append(records, rec)
	}

	vocab := buildVocabulary(records, cfg.vocabulary)
	ds := models.NewDataset(path, records, vocab)

	cfg.logger.Info().
		Str("path", path).
		Int("cases", ds.Len()).
		Bool("has_year", ds.HasYear).
		Msg("Dataset loaded")

	return ds, nil
}

func buildRecord(r row, n int) (models.CaseRecord, error) {
	name := r.get(ColCaseName)
	company := r.get(ColCompany)
	if name == "" {
		name = company
	}
	if name == "" {
		name = fmt.Sprintf("Case #%d", n)
	}

	settlementText := r.get(ColSettlement)
	settlement, err := ParseSettlement(settlementText)
	if err != nil {
		return models.CaseRecord{}, &models.LoadError{Row: n, Column: ColSettlement, Reason: fmt.Sprintf("unparseable amount %q", settlementText), Err: err}
	}

	yearText := r.get(ColYear)
	year, err := ParseYear(yearText)
	if errors.Is(err, ErrYearOutOfRange) {
		return models.CaseRecord{}, &models.LoadError{Row: n, Column: ColYear, Reason: fmt.Sprintf("year %q outside %d-%d", yearText, MinYear, MaxYear)}
	}
	if err != nil {
		return models.CaseRecord{}, &models.LoadError{Row: n, Column: ColYear, Reason: fmt.Sprintf("unparseable year %q", yearText), Err: err}
	}

	status := r.get(ColStatus)

	return models.CaseRecord{
		ID:                  CaseID(name),
		Row:                 n,
		Name:                name,
		Company:             company,
		DefendantType:       r.get(ColDefendantType),
		PlaintiffLawFirm:    r.get(ColPlaintiffLawFirm),
		ClaimType:           r.get(ColClaimType),
		Category:            r.get(ColCategory),
		Status:              status,
		StatusGroup:         NormalizeStatus(status),
		Jurisdiction:        r.get(ColJurisdiction),
		Industry:            r.get(ColIndustry),
		Channel:             r.get(ColChannel),
		Year:                year,
		Settlement:          settlement,
		SettlementText:      settlementText,
		Ruling:              r.get(ColRuling),
		Outcome:             r.get(ColOutcome),
		Summary:             r.get(ColSummary),
		Quote:               r.get(ColQuote),
		EnvironmentalClaims: r.get(ColEnvClaims),
		Court:               r.get(ColCourt),
		DocketNumber:        r.get(ColDocket),
		StateLawCited:       r.get(ColStateLaw),
		ReliefSought:        r.get(ColRelief),
		ClassSize:           r.get(ColClassSize),
		CertificationMisuse: r.get(ColCertificationMisuse),
		KeyDates:            r.get(ColKeyDates),
		ClaimLocation:       r.get(ColClaimLocation),
		Confidence:          r.get(ColConfidence),
		RulingPDFURL:        r.get(ColRulingPDF),
		ComplaintURL:        r.get(ColComplaintURL),
		Sources:             SplitSources(r.get(ColSources)),
		Verified:            ParseBool(r.get(ColVerified)),
	}, nil
}

// buildVocabulary unions configured values with the values observed in the data.
// The status vocabulary is the fixed list of status groups.
func buildVocabulary(records []models.CaseRecord, seed models.Vocabulary) models.Vocabulary {
	vocab := make(models.Vocabulary, len(models.CategoricalFields))
	for _, f := range models.CategoricalFields {
		if f == models.FieldStatus {
			vocab[f] = append([]string(nil), models.StatusGroups...)
			continue
		}
		observed := make([]string, 0, len(records))
		for _, r := range records {
			observed = append(observed, r.Field(f))
		}
		vocab[f] = models.MergeVocabulary(seed[f], observed)
	}
	return vocab
}
