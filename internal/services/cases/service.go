// Package cases provides case browsing over the loaded dataset
package cases

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/bobmcallan/greenwash/internal/common"
	"github.com/bobmcallan/greenwash/internal/interfaces"
	"github.com/bobmcallan/greenwash/internal/models"
	"github.com/bobmcallan/greenwash/internal/services/filter"
)

// Compile-time interface check
var _ interfaces.CaseService = (*Service)(nil)

// Service implements CaseService
type Service struct {
	dataset  *models.Dataset
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
	logger   *common.Logger
}

// NewService creates a new case service over an immutable dataset
func NewService(dataset *models.Dataset, logger *common.Logger) *Service {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Service{
		dataset: dataset,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: policy,
		logger: logger,
	}
}

// Dataset returns the case table
func (s *Service) Dataset() *models.Dataset {
	return s.dataset
}

// View validates sel and returns the matching cases in dataset order
func (s *Service) View(sel models.Selection) models.View {
	view := filter.NewView(s.dataset, sel)
	for _, fe := range view.Ignored {
		s.logger.Debug().
			Str("field", fe.Field).
			Str("value", fe.Value).
			Str("reason", fe.Reason).
			Msg("Filter value ignored")
	}
	return view
}

// List returns the matching cases in the requested order
func (s *Service) List(sel models.Selection, order models.SortOrder) models.View {
	view := s.View(sel)
	view.Records = filter.Sort(view.Records, order)
	return view
}

// Get returns a case prepared for the detail page
func (s *Service) Get(id string) (*models.CaseDetail, error) {
	rec, ok := s.dataset.Case(id)
	if !ok {
		return nil, fmt.Errorf("case %s: %w", id, models.ErrCaseNotFound)
	}

	summary, err := s.render(rec.Summary)
	if err != nil {
		return nil, fmt.Errorf("failed to render summary of %s: %w", rec.Name, err)
	}
	ruling, err := s.render(rec.Ruling)
	if err != nil {
		return nil, fmt.Errorf("failed to render ruling of %s: %w", rec.Name, err)
	}

	return &models.CaseDetail{
		Case:        rec,
		SummaryHTML: summary,
		RulingHTML:  ruling,
		Sources:     SourceLinks(rec.Sources),
	}, nil
}

// render converts markdown to sanitized HTML.
func (s *Service) render(text string) (template.HTML, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return template.HTML(s.policy.SanitizeBytes(buf.Bytes())), nil
}

// SourceLinks keeps the http(s) sources and labels each with its host.
func SourceLinks(sources []string) []models.SourceLink {
	var links []models.SourceLink
	for _, src := range sources {
		u, err := url.Parse(strings.TrimSpace(src))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			continue
		}
		links = append(links, models.SourceLink{
			URL:    u.String(),
			Domain: strings.TrimPrefix(u.Hostname(), "www."),
		})
	}
	return links
}
