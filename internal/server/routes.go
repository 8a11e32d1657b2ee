package server

import (
	"net/http"

	"github.com/bobmcallan/greenwash/internal/common"
)

// registerRoutes sets up the pages, chart images and JSON API on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// API
	mux.HandleFunc("/api/cases/", s.requireDataset(s.handleAPICase))
	mux.HandleFunc("/api/cases", s.requireDataset(s.handleAPICases))
	mux.HandleFunc("/api/overview", s.requireDataset(s.handleAPIOverview))
	mux.HandleFunc("/api/vocabulary", s.requireDataset(s.handleAPIVocabulary))
	mux.HandleFunc("/api/", s.handleAPINotFound)

	// Charts
	mux.Handle("/charts/", rateLimitMiddleware(s.chartLimiter, s.logger)(s.requireDataset(s.handleChart)))

	// Pages
	mux.HandleFunc("/cases/", s.requireDataset(s.handleCaseDetail))
	mux.HandleFunc("/cases", s.requireDataset(s.handleExplorer))
	mux.HandleFunc("/", s.handleRoot)
}

// requireDataset blocks a handler with 503 while the dataset is unavailable.
func (s *Server) requireDataset(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.app.Ready() {
			next(w, r)
			return
		}
		message := "Dataset unavailable"
		if s.app.LoadErr != nil {
			message = s.app.LoadErr.Error()
		}
		if isAPI(r) {
			WriteErrorWithCode(w, http.StatusServiceUnavailable, message, "dataset_unavailable")
			return
		}
		s.renderError(w, http.StatusServiceUnavailable, "Dataset could not be loaded", message)
	}
}

// handleRoot serves the overview at "/" and 404 for every other unmatched path.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.renderError(w, http.StatusNotFound, "Page not found", "There is nothing at "+r.URL.Path+".")
		return
	}
	s.requireDataset(s.handleOverview)(w, r)
}

func (s *Server) handleAPINotFound(w http.ResponseWriter, r *http.Request) {
	WriteErrorWithCode(w, http.StatusNotFound, "Not found", "not_found")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	if !s.app.Ready() {
		body := map[string]string{"status": "error"}
		if s.app.LoadErr != nil {
			body["error"] = s.app.LoadErr.Error()
		}
		WriteJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"cases":  s.app.Dataset.Len(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
