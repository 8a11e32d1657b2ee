package main

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bobmcallan/greenwash/internal/app"
	"github.com/bobmcallan/greenwash/internal/common"
	"github.com/bobmcallan/greenwash/internal/models"
	"github.com/bobmcallan/greenwash/internal/server"
	"github.com/bobmcallan/greenwash/internal/services/analytics"
)

var (
	summaryFilters []string
	summaryTop     int
)

// summaryCmd prints headline statistics without starting the server
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print headline statistics for the dataset",
	Long: `Load the dataset, apply optional filters and print the headline metrics,
settlement statistics and the top claim types and jurisdictions.

Filters use the same names as the web query string:
  claim_type, category, status, jurisdiction, industry, channel,
  year_min, year_max, settlement_min, settlement_max, q`,
	RunE: runSummary,
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2e7d32")).
			Bold(true).
			MarginBottom(1)
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#66bb6a")).
			Bold(true)
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9e9e9e")).
			Width(22)
	valueStyle = lipgloss.NewStyle().
			Bold(true)
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f9a825"))
)

func runSummary(cmd *cobra.Command, args []string) error {
	a, err := app.NewApp(configPath, datasetPath)
	if err != nil {
		return err
	}
	if !a.Ready() {
		return a.LoadErr
	}

	q, err := filterQuery(summaryFilters)
	if err != nil {
		return err
	}

	sel, order, ignored := server.ParseSelection(q)
	view := a.CaseService.List(sel, order)
	view.Ignored = append(ignored, view.Ignored...)

	renderSummary(cmd.OutOrStdout(), view, a.AnalyticsService.Overview(view), summaryTop)
	return nil
}

// filterQuery turns field=value flags into query values.
func filterQuery(filters []string) (url.Values, error) {
	q := url.Values{}
	for _, f := range filters {
		key, value, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid filter %q: expected field=value", f)
		}
		q.Add(strings.TrimSpace(key), value)
	}
	return q, nil
}

func renderSummary(w io.Writer, view models.View, ov models.Overview, top int) {
	line := func(label, value string) {
		fmt.Fprintln(w, labelStyle.Render(label)+valueStyle.Render(value))
	}

	fmt.Fprintln(w, titleStyle.Render("Greenwashing Litigation Summary"))
	for _, fe := range view.Ignored {
		fmt.Fprintln(w, warnStyle.Render(fe.Error()))
	}

	line("Cases", fmt.Sprintf("%s of %s", common.FormatCount(view.Count()), common.FormatCount(view.Total)))
	line("Settled", common.FormatCount(ov.Headline.Settled))
	line("Pending", common.FormatCount(ov.Headline.Pending))
	line("Dismissed", common.FormatCount(ov.Headline.Dismissed))
	line("Total settlements", common.FormatMoney(ov.Headline.SettlementTotal))

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("Settlements"))
	if s := ov.Settlements; s.HasData {
		line("Known amounts", common.FormatCount(s.Count))
		line("Median", common.FormatMoney(s.Median))
		line("Mean", common.FormatMoney(s.Mean))
		line("Largest", common.FormatMoney(s.Max))
	} else {
		fmt.Fprintln(w, labelStyle.Render("No settlement data"))
	}

	ranking := func(heading string, buckets []models.Bucket) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headingStyle.Render(heading))
		rows := analytics.TopBuckets(buckets, top)
		if len(rows) == 0 {
			fmt.Fprintln(w, labelStyle.Render("No cases"))
			return
		}
		for _, b := range rows {
			line(b.Label, common.FormatCount(b.Count))
		}
	}
	ranking("Top claim types", ov.ByClaimType)
	ranking("Top jurisdictions", ov.ByJurisdiction)
	ranking("By status", ov.ByStatus)
}
