package dataset

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/bobmcallan/greenwash/internal/models"
)

var numberPattern = regexp.MustCompile(`\d[\d.]*`)

// Years outside this window are data entry errors.
const (
	MinYear = 1900
	MaxYear = 2100
)

// ErrYearOutOfRange is returned by ParseYear for a year outside MinYear..MaxYear.
var ErrYearOutOfRange = errors.New("year out of range")

// ParseSettlement converts settlement text such as "$1.2 million" into dollars.
// Blank text, text without a number, and a zero amount all mean no settlement (nil).
// A number token that does not parse is an error.
func ParseSettlement(raw string) (*float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || s == "nan" {
		return nil, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")

	tok := numberPattern.FindString(s)
	if tok == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.Contains(s, "billion"):
		v *= 1_000_000_000
	case strings.Contains(s, "million"):
		v *= 1_000_000
	case strings.Contains(s, "thousand"):
		v *= 1_000
	}

	if v == 0 {
		return nil, nil
	}
	return &v, nil
}

// NormalizeStatus maps free-text case status onto a status group.
// Rules are checked in order and the first match wins.
func NormalizeStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch {
	case strings.Contains(s, "settled"):
		return models.StatusSettled
	case strings.Contains(s, "pending"):
		return models.StatusPending
	case strings.Contains(s, "dismissed") && strings.Contains(s, "without"):
		return models.StatusDismissedWithoutPrejudice
	case strings.Contains(s, "dismissed"):
		return models.StatusDismissed
	case strings.Contains(s, "voluntarily"):
		return models.StatusVoluntarilyDismissed
	case strings.Contains(s, "motion") && strings.Contains(s, "denied"):
		return models.StatusMTDDenied
	case strings.Contains(s, "motion") && strings.Contains(s, "granted"):
		return models.StatusMTDGranted
	case strings.Contains(s, "appeal"):
		return models.StatusOnAppeal
	case strings.Contains(s, "class") && strings.Contains(s, "certified"):
		return models.StatusClassCertified
	case s == "" || s == "nan" || strings.Contains(s, "unknown"):
		return models.StatusUnknown
	default:
		return models.StatusOther
	}
}

// ParseYear reads a year cell. Spreadsheet exports often write years as "2021.0".
func ParseYear(raw string) (*int, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if f < MinYear || f > MaxYear {
		return nil, ErrYearOutOfRange
	}
	if f != float64(int(f)) {
		return nil, strconv.ErrSyntax
	}
	y := int(f)
	return &y, nil
}

// ParseBool reads a verification flag.
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}

// SplitSources splits the " | " separated source list.
func SplitSources(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, "|") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// cleanText trims a text cell and blanks spreadsheet NaN markers.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}
