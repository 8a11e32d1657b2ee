package server

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/greenwash/internal/models"
)

// casesResponse is the body of GET /api/cases.
type casesResponse struct {
	Total     int                   `json:"total"`
	Count     int                   `json:"count"`
	Sort      models.SortOrder      `json:"sort"`
	Selection models.Selection      `json:"selection"`
	Ignored   []*models.FilterError `json:"ignored_filters,omitempty"`
	Cases     []models.CaseRecord   `json:"cases"`
}

// overviewResponse is the body of GET /api/overview.
type overviewResponse struct {
	Total     int                   `json:"total"`
	Count     int                   `json:"count"`
	Selection models.Selection      `json:"selection"`
	Ignored   []*models.FilterError `json:"ignored_filters,omitempty"`
	Overview  models.Overview       `json:"overview"`
}

// vocabularyResponse is the body of GET /api/vocabulary.
type vocabularyResponse struct {
	Fields    models.Vocabulary  `json:"fields"`
	Sorts     []models.SortOrder `json:"sorts"`
	YearRange *yearRange         `json:"year_range,omitempty"`
}

type yearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// listView parses the request's filter state and runs it against the dataset.
// Parse failures and vocabulary misses are merged into view.Ignored.
func (s *Server) listView(r *http.Request) (models.View, models.SortOrder) {
	sel, order, ignored := ParseSelection(r.URL.Query())
	view := s.app.CaseService.List(sel, order)
	view.Ignored = append(ignored, view.Ignored...)
	return view, order
}

func (s *Server) handleAPICases(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	view, order := s.listView(r)
	WriteJSON(w, http.StatusOK, casesResponse{
		Total:     view.Total,
		Count:     view.Count(),
		Sort:      order,
		Selection: view.Selection,
		Ignored:   view.Ignored,
		Cases:     view.Records,
	})
}

func (s *Server) handleAPICase(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	id := PathParam(r, "/api/cases/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Case ID is required")
		return
	}

	detail, err := s.app.CaseService.Get(id)
	if errors.Is(err, models.ErrCaseNotFound) {
		WriteErrorWithCode(w, http.StatusNotFound, "Case not found", "not_found")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Str("case_id", id).Msg("Failed to prepare case")
		WriteError(w, http.StatusInternalServerError, "Failed to load case")
		return
	}
	WriteJSON(w, http.StatusOK, detail)
}

func (s *Server) handleAPIOverview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	view, _ := s.listView(r)
	WriteJSON(w, http.StatusOK, overviewResponse{
		Total:     view.Total,
		Count:     view.Count(),
		Selection: view.Selection,
		Ignored:   view.Ignored,
		Overview:  s.app.AnalyticsService.Overview(view),
	})
}

func (s *Server) handleAPIVocabulary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	ds := s.app.CaseService.Dataset()
	resp := vocabularyResponse{
		Fields: ds.Vocabulary,
		Sorts:  models.SortOrders,
	}
	if lo, hi, ok := ds.YearRange(); ok {
		resp.YearRange = &yearRange{Min: lo, Max: hi}
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	name, format, ok := models.ParseChartFile(PathParam(r, "/charts/", ""))
	if !ok {
		WriteErrorWithCode(w, http.StatusNotFound, "Unknown chart", "not_found")
		return
	}

	view, _ := s.listView(r)
	data, err := s.app.ChartService.Render(name, format, s.app.AnalyticsService.Overview(view))
	if err != nil {
		s.logger.Error().Err(err).Str("chart", string(name)).Msg("Chart render failed")
		WriteError(w, http.StatusInternalServerError, "Failed to render chart")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
