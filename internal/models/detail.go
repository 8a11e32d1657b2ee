package models

import "html/template"

// SourceLink is a research source shown on the case detail page.
type SourceLink struct {
	URL    string `json:"url"`
	Domain string `json:"domain"`
}

// CaseDetail is a case prepared for the detail page.
type CaseDetail struct {
	Case        CaseRecord    `json:"case"`
	SummaryHTML template.HTML `json:"summary_html,omitempty"`
	RulingHTML  template.HTML `json:"ruling_html,omitempty"`
	Sources     []SourceLink  `json:"sources,omitempty"`
}
