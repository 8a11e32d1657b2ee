package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bobmcallan/greenwash/internal/app"
	"github.com/bobmcallan/greenwash/internal/common"
	"github.com/bobmcallan/greenwash/internal/dataset"
)

const testCSV = `case_name,Product/Company,claim_type,sub_category,current_status,jurisdiction,settlement_amount,ruling_description,sources,Year,quote,summary,industry_sector,channel,verified_independently,plaintiff_law_firm
Smith v. Bottle Co,Bottle Co,Recyclability,Plastics,Settled,California,$1.5 million,Settled,https://www.example.com/a,2020,Our bottles are 100% recyclable,The **plaintiff** alleged misleading labels.,Food & Beverage,Packaging,TRUE,Jones LLP
Doe v. Air Ltd,Air Ltd,Carbon Neutral,Offsets,Pending,New York,,,,2022,Fly carbon neutral today,,Airlines,Advertising,FALSE,
Roe v. Pods Inc,Pods Inc,Recyclability,Plastics,Dismissed without prejudice,New York,,Dismissed,,2021,Recyclable <b>pods</b>,,Food & Beverage,Packaging,,
`

func newTestConfig(t *testing.T) *common.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o644))

	cfg := common.NewDefaultConfig()
	cfg.Dataset.Path = path
	cfg.Vocabulary.ClaimTypes = []string{"Vegan"}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	return cfg
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	a := app.NewAppWithConfig(newTestConfig(t), common.NewSilentLogger())
	require.True(t, a.Ready())
	return NewServer(a)
}

func newBlockedServer(t *testing.T) *Server {
	t.Helper()
	cfg := common.NewDefaultConfig()
	cfg.Dataset.Path = filepath.Join(t.TempDir(), "missing.csv")
	a := app.NewAppWithConfig(cfg, common.NewSilentLogger())
	require.False(t, a.Ready())
	return NewServer(a)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}

func TestOverviewPage(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	body := rr.Body.String()
	assert.Contains(t, body, "Market Overview")
	assert.Contains(t, body, "Showing 3 of 3 cases")
	assert.Contains(t, body, `src="/charts/year.png"`)
	assert.Contains(t, body, "$1.5M")
	assert.Contains(t, body, "Vegan", "vocabulary values without cases still appear")
}

func TestOverviewPage_Filtered(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/?claim_type=recyclability&jurisdiction=Atlantis")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Showing 2 of 3 cases")
	assert.Contains(t, body, "/charts/status.png?claim_type=Recyclability")
	assert.Contains(t, body, "Ignored filters")
	assert.Contains(t, body, "jurisdiction=Atlantis")
}

func TestOverviewPage_KeepsKeyword(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/?q=recyclable")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `<input type="hidden" name="q" value="recyclable">`)
	assert.NotContains(t, body, `type="search"`)

	rr = get(t, s, "/")
	assert.NotContains(t, rr.Body.String(), `name="q"`)
}

func TestOverviewPage_CategoryNarrowedByClaimType(t *testing.T) {
	s := newTestServer(t)

	body := get(t, s, "/").Body.String()
	assert.Contains(t, body, `<option value="Offsets" >Offsets</option>`)

	body = get(t, s, "/?claim_type=Recyclability").Body.String()
	assert.Contains(t, body, `<option value="Plastics" >Plastics</option>`)
	assert.NotContains(t, body, `value="Offsets"`)
}

func TestExplorerPage_KeywordHighlight(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/cases?q=recyclable&sort=name_asc")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Found 2 cases")
	assert.Contains(t, body, "<mark>recyclable</mark>")
	assert.Contains(t, body, "<mark>Recyclable</mark> &lt;b&gt;pods&lt;/b&gt;")
	assert.Less(t, strings.Index(body, "Roe v. Pods Inc"), strings.Index(body, "Smith v. Bottle Co"))
}

func TestExplorerPage_NoMatches(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/cases?claim_type=Vegan")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "No cases match these filters.")
}

func TestCaseDetailPage(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/cases/"+dataset.CaseID("Smith v. Bottle Co")+"?q=bottles")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Smith v. Bottle Co")
	assert.Contains(t, body, `<p class="parties">Bottle Co · Jones LLP</p>`)
	assert.Contains(t, body, "<strong>plaintiff</strong>")
	assert.Contains(t, body, "<mark>bottles</mark>")
	assert.Contains(t, body, ">example.com</a>")
	assert.Contains(t, body, "Independently Verified")
	assert.Contains(t, body, `href="/cases?q=bottles"`)
}

func TestCaseDetailPage_NotFound(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/cases/does-not-exist")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Case not found")
}

func TestUnknownPath(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, get(t, s, "/nowhere").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/nowhere").Code)
}

func TestCharts(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/charts/year.png?claim_type=Recyclability")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), "\x89PNG"))

	rr = get(t, s, "/charts/status.svg")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))

	rr = get(t, s, "/charts/settlements_top.png?claim_type=Vegan")
	assert.Equal(t, http.StatusOK, rr.Code, "empty data renders a placeholder")

	assert.Equal(t, http.StatusNotFound, get(t, s, "/charts/radar.png").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/charts/year.gif").Code)
}

func TestCharts_RateLimited(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Server.ChartRateLimit = 0.001
	cfg.Server.ChartBurst = 1
	s := NewServer(app.NewAppWithConfig(cfg, common.NewSilentLogger()))

	assert.Equal(t, http.StatusOK, get(t, s, "/charts/year.png").Code)
	rr := get(t, s, "/charts/year.png")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}

func TestAPICases(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/api/cases?claim_type=Recyclability&claim_type=Imaginary&year_min=abc&sort=year_asc")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Total   int    `json:"total"`
		Count   int    `json:"count"`
		Sort    string `json:"sort"`
		Ignored []struct {
			Field string `json:"field"`
			Value string `json:"value"`
		} `json:"ignored_filters"`
		Cases []struct {
			Name string `json:"name"`
		} `json:"cases"`
	}
	decode(t, rr, &resp)

	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "year_asc", resp.Sort)
	require.Len(t, resp.Cases, 2)
	assert.Equal(t, "Smith v. Bottle Co", resp.Cases[0].Name)
	assert.Equal(t, "Roe v. Pods Inc", resp.Cases[1].Name)
	require.Len(t, resp.Ignored, 2)
	assert.Equal(t, "year_min", resp.Ignored[0].Field)
	assert.Equal(t, "Imaginary", resp.Ignored[1].Value)
}

func TestAPICases_EmptyResultIsArray(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/api/cases?claim_type=Vegan")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"cases":[]`)
}

func TestAPICase(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/api/cases/"+dataset.CaseID("Doe v. Air Ltd"))
	require.Equal(t, http.StatusOK, rr.Code)
	var detail struct {
		Case struct {
			Company     string `json:"company"`
			StatusGroup string `json:"status_group"`
		} `json:"case"`
	}
	decode(t, rr, &detail)
	assert.Equal(t, "Air Ltd", detail.Case.Company)
	assert.Equal(t, "Pending", detail.Case.StatusGroup)

	rr = get(t, s, "/api/cases/unknown")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	var errResp ErrorResponse
	decode(t, rr, &errResp)
	assert.Equal(t, "not_found", errResp.Code)
}

func TestAPIOverview(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/api/overview?jurisdiction=New%20York")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Count    int `json:"count"`
		Overview struct {
			Headline struct {
				Total     int `json:"total"`
				Pending   int `json:"pending"`
				Dismissed int `json:"dismissed"`
			} `json:"headline"`
			ByClaimType []struct {
				Label string `json:"label"`
				Count int    `json:"count"`
			} `json:"by_claim_type"`
			Settlements struct {
				HasData bool `json:"has_data"`
			} `json:"settlements"`
		} `json:"overview"`
	}
	decode(t, rr, &resp)

	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 2, resp.Overview.Headline.Total)
	assert.Equal(t, 1, resp.Overview.Headline.Pending)
	assert.Equal(t, 1, resp.Overview.Headline.Dismissed)
	assert.False(t, resp.Overview.Settlements.HasData)

	sum := 0
	labels := map[string]int{}
	for _, b := range resp.Overview.ByClaimType {
		sum += b.Count
		labels[b.Label] = b.Count
	}
	assert.Equal(t, resp.Count, sum)
	assert.Contains(t, labels, "Vegan")
	assert.Equal(t, 0, labels["Vegan"])
}

func TestAPIVocabulary(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/api/vocabulary")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Fields    map[string][]string `json:"fields"`
		YearRange struct {
			Min int `json:"min"`
			Max int `json:"max"`
		} `json:"year_range"`
	}
	decode(t, rr, &resp)
	assert.Equal(t, []string{"Carbon Neutral", "Recyclability", "Vegan"}, resp.Fields["claim_type"])
	assert.Equal(t, 2020, resp.YearRange.Min)
	assert.Equal(t, 2022, resp.YearRange.Max)
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/api/health")
	require.Equal(t, http.StatusOK, rr.Code)
	var health map[string]interface{}
	decode(t, rr, &health)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, float64(3), health["cases"])

	rr = get(t, s, "/api/version")
	require.Equal(t, http.StatusOK, rr.Code)
	var version map[string]string
	decode(t, rr, &version)
	assert.Equal(t, common.GetVersion(), version["version"])
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/cases", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET", rr.Header().Get("Allow"))
}

func TestBlockedServer(t *testing.T) {
	s := newBlockedServer(t)

	rr := get(t, s, "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	var health map[string]string
	decode(t, rr, &health)
	assert.Equal(t, "error", health["status"])
	assert.Contains(t, health["error"], "file not found")

	rr = get(t, s, "/")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "Dataset could not be loaded")
	assert.Contains(t, rr.Body.String(), "missing.csv")

	rr = get(t, s, "/api/cases")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	var errResp ErrorResponse
	decode(t, rr, &errResp)
	assert.Equal(t, "dataset_unavailable", errResp.Code)

	for _, path := range []string{"/cases", "/cases/abc", "/charts/year.png", "/api/overview", "/api/vocabulary"} {
		assert.Equal(t, http.StatusServiceUnavailable, get(t, s, path).Code, path)
	}

	assert.Equal(t, http.StatusOK, get(t, s, "/api/version").Code)
}

func TestStartShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := newTestServer(t)
	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
