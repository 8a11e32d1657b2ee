package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/bobmcallan/greenwash/internal/common"
	"github.com/bobmcallan/greenwash/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageSet holds one parsed template per page, each sharing the layout.
type pageSet struct {
	pages map[string]*template.Template
}

var pageNames = []string{"overview.html", "explorer.html", "detail.html", "error.html"}

var templateFuncs = template.FuncMap{
	"count":       common.FormatCount,
	"money":       common.FormatMoney,
	"moneyOrDash": common.FormatMoneyOrDash,
	"percent":     common.FormatPercent,
	"statusClass": statusClass,
	"orDash":      orDash,
	"year": func(y *int) string {
		if y == nil {
			return "N/A"
		}
		return strconv.Itoa(*y)
	},
	"settlement": func(c models.CaseRecord) string {
		if c.Settlement != nil {
			return common.FormatMoney(*c.Settlement)
		}
		return orDash(c.SettlementText)
	},
}

func mustParsePages() *pageSet {
	ps := &pageSet{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		ps.pages[name] = template.Must(template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name))
	}
	return ps
}

// statusClass maps a status group to its badge CSS class.
func statusClass(statusGroup string) string {
	switch {
	case statusGroup == models.StatusSettled:
		return "badge-settled"
	case statusGroup == models.StatusPending:
		return "badge-pending"
	case models.IsDismissed(statusGroup):
		return "badge-dismissed"
	case statusGroup == models.StatusUnknown:
		return "badge-unknown"
	default:
		return "badge-other"
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// renderPage executes a page into a buffer first so template errors become a clean 500.
func (s *Server) renderPage(w http.ResponseWriter, status int, name string, data interface{}) {
	tmpl, ok := s.pages.pages[name]
	if !ok {
		s.logger.Error().Str("page", name).Msg("Unknown page template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error().Err(err).Str("page", name).Msg("Page render failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

type errorPage struct {
	Title   string
	Nav     string
	Status  int
	Heading string
	Message string
}

func (s *Server) renderError(w http.ResponseWriter, status int, heading, message string) {
	s.renderPage(w, status, "error.html", errorPage{
		Title:   heading,
		Status:  status,
		Heading: heading,
		Message: message,
	})
}
