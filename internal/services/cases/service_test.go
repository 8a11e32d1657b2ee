package cases

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/greenwash/internal/common"
	"github.com/bobmcallan/greenwash/internal/dataset"
	"github.com/bobmcallan/greenwash/internal/models"
)

const testCSV = `case_name,Product/Company,claim_type,sub_category,current_status,jurisdiction,settlement_amount,ruling_description,sources,Year,quote,summary
Smith v. Bottle Co,Bottle Co,Recyclability,Plastics,Settled,California,$1.5 million,Settled **out of court**,https://www.example.com/a | not-a-link | http://court.gov/b,2020,100% recyclable,"The **plaintiff** alleged <script>alert(1)</script> misleading labels."
Doe v. Air Ltd,Air Ltd,Carbon Neutral,Offsets,Pending,New York,,,,2022,Fly carbon neutral,
Roe v. Pods Inc,Pods Inc,Recyclability,Plastics,Dismissed,New York,,Dismissed,,2021,,
`

func newTestService(t *testing.T) *Service {
	t.Helper()
	ds, err := dataset.Parse(strings.NewReader(testCSV))
	require.NoError(t, err)
	return NewService(ds, common.NewSilentLogger())
}

func TestList_FiltersAndSorts(t *testing.T) {
	svc := newTestService(t)

	view := svc.List(models.Selection{}.With(models.FieldClaimType, "recyclability"), models.SortYearAsc)

	require.Equal(t, 2, view.Count())
	assert.Equal(t, "Smith v. Bottle Co", view.Records[0].Name)
	assert.Equal(t, "Roe v. Pods Inc", view.Records[1].Name)
	assert.Equal(t, 3, view.Total)
	assert.Empty(t, view.Ignored)
}

func TestView_ReportsIgnoredValues(t *testing.T) {
	svc := newTestService(t)

	view := svc.View(models.Selection{}.With(models.FieldJurisdiction, "Mars"))

	assert.Equal(t, 3, view.Count())
	require.Len(t, view.Ignored, 1)
	assert.Equal(t, "Mars", view.Ignored[0].Value)
}

func TestGet(t *testing.T) {
	svc := newTestService(t)
	id := dataset.CaseID("Smith v. Bottle Co")

	detail, err := svc.Get(id)

	require.NoError(t, err)
	assert.Equal(t, "Bottle Co", detail.Case.Company)
	assert.Contains(t, string(detail.SummaryHTML), "<strong>plaintiff</strong>")
	assert.NotContains(t, string(detail.SummaryHTML), "<script>")
	assert.Contains(t, string(detail.RulingHTML), "<strong>out of court</strong>")
	assert.Equal(t, []models.SourceLink{
		{URL: "https://www.example.com/a", Domain: "example.com"},
		{URL: "http://court.gov/b", Domain: "court.gov"},
	}, detail.Sources)
}

func TestGet_EmptyNarrative(t *testing.T) {
	svc := newTestService(t)

	detail, err := svc.Get(dataset.CaseID("Doe v. Air Ltd"))

	require.NoError(t, err)
	assert.Empty(t, detail.SummaryHTML)
	assert.Empty(t, detail.Sources)
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get("missing")

	assert.True(t, errors.Is(err, models.ErrCaseNotFound))
}

func TestSourceLinks(t *testing.T) {
	links := SourceLinks([]string{"ftp://x.org/file", " https://news.site.org/story?id=1 ", ""})
	assert.Equal(t, []models.SourceLink{{URL: "https://news.site.org/story?id=1", Domain: "news.site.org"}}, links)
}
