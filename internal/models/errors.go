package models

import (
	"errors"
	"fmt"
	"strings"
)

// LoadError reports a dataset that is missing or malformed.
// Loading has no fallback, so a LoadError blocks the dashboard.
type LoadError struct {
	Path   string
	Row    int    // 1-based data row, 0 when not row specific
	Column string // offending column, empty when not column specific
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("load dataset")
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ": column %q", e.Column)
	}
	fmt.Fprintf(&b, ": %s", e.Reason)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FilterError reports a filter value that cannot be applied. Such values are ignored.
type FilterError struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("filter %s=%q ignored: %s", e.Field, e.Value, e.Reason)
}

// ErrCaseNotFound is returned when a case ID is not in the dataset.
var ErrCaseNotFound = errors.New("case not found")
