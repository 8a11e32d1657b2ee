// Package chart renders the dashboard charts as PNG or SVG images.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/greenwash/internal/common"
	"github.com/bobmcallan/greenwash/internal/interfaces"
	"github.com/bobmcallan/greenwash/internal/models"
	"github.com/bobmcallan/greenwash/internal/services/analytics"
)

// Compile-time interface check
var _ interfaces.ChartService = (*Service)(nil)

// errNoData marks a chart with nothing to draw; it is rendered as a placeholder.
var errNoData = errors.New("no data")

const maxLabelLen = 22

// palette follows the page's green theme, then neutral accents.
var palette = []drawing.Color{
	drawing.ColorFromHex("2e7d32"), // green-800
	drawing.ColorFromHex("66bb6a"), // green-400
	drawing.ColorFromHex("0277bd"), // light-blue-800
	drawing.ColorFromHex("f9a825"), // yellow-800
	drawing.ColorFromHex("8d6e63"), // brown-300
	drawing.ColorFromHex("ab47bc"), // purple-400
	drawing.ColorFromHex("26a69a"), // teal-400
	drawing.ColorFromHex("ef5350"), // red-400
	drawing.ColorFromHex("78909c"), // blue-grey-400
	drawing.ColorFromHex("c0ca33"), // lime-600
}

func paletteColor(i int) drawing.Color {
	return palette[i%len(palette)]
}

// Service implements ChartService
type Service struct {
	config common.ChartsConfig
	logger *common.Logger
}

// NewService creates a new chart service
func NewService(config common.ChartsConfig, logger *common.Logger) *Service {
	if config.Width <= 0 {
		config.Width = 640
	}
	if config.Height <= 0 {
		config.Height = 350
	}
	return &Service{
		config: config,
		logger: logger,
	}
}

// Render draws the named chart from an overview.
func (s *Service) Render(name models.ChartName, format models.ChartFormat, overview models.Overview) ([]byte, error) {
	start := time.Now()
	provider := rendererFor(format)
	title := name.Title()

	var buf bytes.Buffer
	var err error
	switch name {
	case models.ChartYear:
		err = s.bars(&buf, provider, title, yearValues(overview.ByYear, false), formatCount)
	case models.ChartStatus:
		err = s.pie(&buf, provider, title, overview.StatusShare)
	case models.ChartClaimType:
		err = s.bars(&buf, provider, title, bucketValues(analytics.TopBuckets(overview.ByClaimType, 0)), formatCount)
	case models.ChartIndustry:
		err = s.bars(&buf, provider, title, bucketValues(analytics.TopBuckets(overview.ByIndustry, s.config.TopIndustries)), formatCount)
	case models.ChartJurisdiction:
		err = s.bars(&buf, provider, title, bucketValues(analytics.TopBuckets(overview.ByJurisdiction, s.config.TopJuris)), formatCount)
	case models.ChartSettlementsTop:
		err = s.bars(&buf, provider, title, settlementValues(overview.TopSettlements, s.config.TopSettlements), formatMoney)
	case models.ChartClaimTrend:
		err = s.lines(&buf, provider, title, overview.ClaimTrend)
	case models.ChartSettlementsYear:
		err = s.bars(&buf, provider, title, yearValues(overview.SettlementsByYear, true), formatMoney)
	default:
		return nil, fmt.Errorf("unknown chart %q", name)
	}

	if errors.Is(err, errNoData) {
		buf.Reset()
		err = s.placeholder(&buf, provider, title)
	}
	if err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	s.logger.Debug().
		Str("chart", string(name)).
		Str("format", string(format)).
		Int("bytes", buf.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Chart rendered")

	return buf.Bytes(), nil
}

func rendererFor(format models.ChartFormat) gochart.RendererProvider {
	if format == models.ChartSVG {
		return gochart.SVG
	}
	return gochart.PNG
}

func (s *Service) bars(w io.Writer, provider gochart.RendererProvider, title string, values []gochart.Value, formatter gochart.ValueFormatter) error {
	peak := 0.0
	for _, v := range values {
		if v.Value > peak {
			peak = v.Value
		}
	}
	if peak <= 0 {
		return errNoData
	}

	barWidth := (s.config.Width - 120) / len(values) * 2 / 3
	if barWidth < 8 {
		barWidth = 8
	}
	if barWidth > 60 {
		barWidth = 60
	}

	graph := gochart.BarChart{
		Title:  title,
		Width:  s.config.Width,
		Height: s.config.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth: barWidth,
		YAxis: gochart.YAxis{
			Range:          &gochart.ContinuousRange{Min: 0, Max: peak * 1.1},
			ValueFormatter: formatter,
		},
		Bars: values,
	}
	return graph.Render(provider, w)
}

func (s *Service) pie(w io.Writer, provider gochart.RendererProvider, title string, rows []models.StatusShareRow) error {
	var values []gochart.Value
	for i, row := range rows {
		if row.Count == 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s (%s)", row.Status, common.FormatPercent(row.Percent)),
			Value: float64(row.Count),
			Style: gochart.Style{FillColor: paletteColor(i), StrokeColor: drawing.ColorWhite},
		})
	}
	if len(values) == 0 {
		return errNoData
	}

	graph := gochart.PieChart{
		Title:  title,
		Width:  s.config.Width,
		Height: s.config.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Values: values,
	}
	return graph.Render(provider, w)
}

func (s *Service) lines(w io.Writer, provider gochart.RendererProvider, title string, series []models.Series) error {
	if len(series) == 0 || len(series[0].Points) < 2 {
		return errNoData
	}

	peak := 0.0
	var plotted []gochart.Series
	for i, sr := range series {
		xs := make([]float64, len(sr.Points))
		ys := make([]float64, len(sr.Points))
		for j, p := range sr.Points {
			xs[j] = float64(p.Year)
			ys[j] = float64(p.Count)
			if ys[j] > peak {
				peak = ys[j]
			}
		}
		plotted = append(plotted, gochart.ContinuousSeries{
			Name: truncate(sr.Name),
			Style: gochart.Style{
				StrokeColor: paletteColor(i),
				StrokeWidth: 2,
			},
			XValues: xs,
			YValues: ys,
		})
	}
	if peak <= 0 {
		return errNoData
	}

	var ticks []gochart.Tick
	for _, p := range series[0].Points {
		ticks = append(ticks, gochart.Tick{Value: float64(p.Year), Label: fmt.Sprintf("%d", p.Year)})
	}

	graph := gochart.Chart{
		Title:  title,
		Width:  s.config.Width,
		Height: s.config.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 130, Right: 20, Bottom: 10},
		},
		XAxis: gochart.XAxis{
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Range:          &gochart.ContinuousRange{Min: 0, Max: peak * 1.1},
			ValueFormatter: formatCount,
		},
		Series: plotted,
	}
	graph.Elements = []gochart.Renderable{
		gochart.LegendLeft(&graph),
	}
	return graph.Render(provider, w)
}

// placeholder draws a blank canvas with the chart title and a "No data" message.
func (s *Service) placeholder(w io.Writer, provider gochart.RendererProvider, title string) error {
	width, height := s.config.Width, s.config.Height
	r, err := provider(width, height)
	if err != nil {
		return err
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return err
	}

	r.SetFillColor(drawing.ColorFromHex("f5f5f5"))
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(drawing.ColorFromHex("424242"))
	r.SetFontSize(14)
	tb := r.MeasureText(title)
	r.Text(title, (width-tb.Width())/2, 30)

	msg := "No data for the current filters"
	r.SetFontColor(drawing.ColorFromHex("9e9e9e"))
	r.SetFontSize(12)
	mb := r.MeasureText(msg)
	r.Text(msg, (width-mb.Width())/2, height/2)

	return r.Save(w)
}

func formatCount(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}

func formatMoney(v interface{}) string {
	if f, ok := v.(float64); ok {
		return common.FormatMoney(f)
	}
	return ""
}

func truncate(label string) string {
	if utf8.RuneCountInString(label) <= maxLabelLen {
		return label
	}
	return string([]rune(label)[:maxLabelLen-3]) + "..."
}
