package models

import "strings"

// ChartFormat is the image encoding of a rendered chart.
type ChartFormat string

const (
	ChartPNG ChartFormat = "png"
	ChartSVG ChartFormat = "svg"
)

// ContentType returns the HTTP content type for the format.
func (f ChartFormat) ContentType() string {
	if f == ChartSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// ChartName identifies one of the dashboard charts.
type ChartName string

const (
	ChartYear            ChartName = "year"
	ChartStatus          ChartName = "status"
	ChartClaimType       ChartName = "claim_type"
	ChartIndustry        ChartName = "industry"
	ChartJurisdiction    ChartName = "jurisdiction"
	ChartSettlementsTop  ChartName = "settlements_top"
	ChartClaimTrend      ChartName = "claim_trend"
	ChartSettlementsYear ChartName = "settlements_year"
)

// ChartNames lists the charts in page order.
var ChartNames = []ChartName{
	ChartYear,
	ChartStatus,
	ChartClaimType,
	ChartIndustry,
	ChartJurisdiction,
	ChartSettlementsTop,
	ChartClaimTrend,
	ChartSettlementsYear,
}

// Title returns the heading shown above the chart.
func (n ChartName) Title() string {
	switch n {
	case ChartYear:
		return "Cases by Year"
	case ChartStatus:
		return "Cases by Status"
	case ChartClaimType:
		return "Cases by Claim Type"
	case ChartIndustry:
		return "Cases by Industry"
	case ChartJurisdiction:
		return "Top Jurisdictions"
	case ChartSettlementsTop:
		return "Top Settlements"
	case ChartClaimTrend:
		return "Claim Types Over Time"
	case ChartSettlementsYear:
		return "Settlement Amounts by Year"
	}
	return string(n)
}

// ParseChartFile splits a chart file name such as "status.svg" into name and format.
func ParseChartFile(file string) (ChartName, ChartFormat, bool) {
	dot := strings.LastIndex(file, ".")
	if dot <= 0 {
		return "", "", false
	}
	format := ChartFormat(strings.ToLower(file[dot+1:]))
	if format != ChartPNG && format != ChartSVG {
		return "", "", false
	}
	name := ChartName(file[:dot])
	for _, known := range ChartNames {
		if known == name {
			return name, format, true
		}
	}
	return "", "", false
}
