package server

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bobmcallan/greenwash/internal/models"
	"github.com/bobmcallan/greenwash/internal/services/analytics"
	"github.com/bobmcallan/greenwash/internal/services/filter"
)

const quotePreviewLen = 300

// filterForm is the state of the filter sidebar.
type filterForm struct {
	Action        string
	Fields        []fieldOptions
	YearMin       string
	YearMax       string
	YearLo        int
	YearHi        int
	HasYear       bool
	SettlementMin string
	SettlementMax string
	Keyword       string
	ShowSearch    bool
	Sorts         []sortOption
}

type fieldOptions struct {
	Name    string
	Label   string
	Options []fieldOption
}

type fieldOption struct {
	Value    string
	Selected bool
}

type sortOption struct {
	Value    models.SortOrder
	Label    string
	Selected bool
}

type chartRef struct {
	Title string
	Name  string
	URL   template.URL
	Wide  bool
}

type overviewPage struct {
	Title       string
	Nav         string
	Form        filterForm
	Count       int
	Total       int
	Ignored     []*models.FilterError
	Overview    models.Overview
	Charts      []chartRef
	Channels    []models.Bucket
	ExplorerURL template.URL
}

type caseRow struct {
	ID        string
	URL       template.URL
	Name      string
	Company   string
	Status    string
	ClaimType string
	Year      *int
	Quote     template.HTML
}

type explorerPage struct {
	Title   string
	Nav     string
	Form    filterForm
	Count   int
	Total   int
	Ignored []*models.FilterError
	Keyword string
	Cases   []caseRow
}

type detailPage struct {
	Title    string
	Nav      string
	Detail   *models.CaseDetail
	Parties  []string
	Quote    template.HTML
	BackURL  template.URL
	Verified bool
}

// buildForm fills the filter sidebar from the validated selection.
func (s *Server) buildForm(action string, sel models.Selection, order models.SortOrder, search bool) filterForm {
	ds := s.app.CaseService.Dataset()
	form := filterForm{
		Action:     action,
		Keyword:    sel.Keyword,
		ShowSearch: search,
	}

	for _, f := range models.CategoricalFields {
		values := ds.Vocabulary.Values(f)
		if f == models.FieldCategory {
			values = filter.DependentValues(ds.Records, values,
				models.FieldClaimType, sel.Values[models.FieldClaimType],
				models.FieldCategory, sel.Values[models.FieldCategory])
		}
		if len(values) == 0 {
			continue
		}
		fo := fieldOptions{Name: string(f), Label: f.Label()}
		for _, v := range values {
			fo.Options = append(fo.Options, fieldOption{Value: v, Selected: sel.Selected(f, v)})
		}
		form.Fields = append(form.Fields, fo)
	}

	form.YearLo, form.YearHi, form.HasYear = ds.YearRange()
	if sel.YearMin != nil {
		form.YearMin = strconv.Itoa(*sel.YearMin)
	}
	if sel.YearMax != nil {
		form.YearMax = strconv.Itoa(*sel.YearMax)
	}
	if sel.SettlementMin != nil {
		form.SettlementMin = strconv.FormatFloat(*sel.SettlementMin, 'f', -1, 64)
	}
	if sel.SettlementMax != nil {
		form.SettlementMax = strconv.FormatFloat(*sel.SettlementMax, 'f', -1, 64)
	}

	for _, o := range models.SortOrders {
		form.Sorts = append(form.Sorts, sortOption{Value: o, Label: o.Label(), Selected: o == order})
	}
	return form
}

// handleOverview renders the market overview page.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	view, order := s.listView(r)
	ov := s.app.AnalyticsService.Overview(view)
	q := EncodeSelection(view.Selection, "")

	var charts []chartRef
	for _, name := range models.ChartNames {
		charts = append(charts, chartRef{
			Title: name.Title(),
			Name:  string(name),
			URL:   template.URL(withQuery("/charts/"+string(name)+".png", q)),
			Wide:  name == models.ChartClaimTrend || name == models.ChartSettlementsYear,
		})
	}

	s.renderPage(w, http.StatusOK, "overview.html", overviewPage{
		Title:       "Market Overview",
		Nav:         "overview",
		Form:        s.buildForm("/", view.Selection, order, false),
		Count:       view.Count(),
		Total:       view.Total,
		Ignored:     view.Ignored,
		Overview:    ov,
		Charts:      charts,
		Channels:    analytics.TopBuckets(ov.ByChannel, 0),
		ExplorerURL: template.URL(withQuery("/cases", q)),
	})
}

// handleExplorer renders the searchable case list.
func (s *Server) handleExplorer(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	view, order := s.listView(r)
	back := EncodeSelection(view.Selection, order)

	rows := make([]caseRow, 0, view.Count())
	for _, c := range view.Records {
		row := caseRow{
			ID:        c.ID,
			URL:       template.URL(withQuery("/cases/"+url.PathEscape(c.ID), back)),
			Name:      c.Name,
			Company:   c.Company,
			Status:    c.StatusGroup,
			ClaimType: c.ClaimType,
			Year:      c.Year,
		}
		if view.Selection.Keyword != "" && c.Quote != "" {
			row.Quote = filter.Highlight(filter.Preview(c.Quote, quotePreviewLen), view.Selection.Keyword)
		}
		rows = append(rows, row)
	}

	s.renderPage(w, http.StatusOK, "explorer.html", explorerPage{
		Title:   "Case Explorer",
		Nav:     "cases",
		Form:    s.buildForm("/cases", view.Selection, order, true),
		Count:   view.Count(),
		Total:   view.Total,
		Ignored: view.Ignored,
		Keyword: view.Selection.Keyword,
		Cases:   rows,
	})
}

// handleCaseDetail renders one case. The query string carries the explorer state
// so the back link and keyword highlighting survive the round trip.
func (s *Server) handleCaseDetail(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	id := PathParam(r, "/cases/", "")
	detail, err := s.app.CaseService.Get(id)
	if errors.Is(err, models.ErrCaseNotFound) {
		s.renderError(w, http.StatusNotFound, "Case not found", "No case matches this link. It may have been removed from the dataset.")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Str("case_id", id).Msg("Failed to prepare case")
		s.renderError(w, http.StatusInternalServerError, "Something went wrong", "The case could not be displayed.")
		return
	}

	keyword := r.URL.Query().Get(paramKeyword)
	s.renderPage(w, http.StatusOK, "detail.html", detailPage{
		Title:    detail.Case.Name,
		Nav:      "cases",
		Detail:   detail,
		Parties:  detail.Case.Parties(),
		Quote:    filter.Highlight(detail.Case.Quote, keyword),
		BackURL:  template.URL(withQuery("/cases", r.URL.Query())),
		Verified: detail.Case.Verified,
	})
}
