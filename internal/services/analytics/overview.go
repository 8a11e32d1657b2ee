package analytics

import "github.com/bobmcallan/greenwash/internal/models"

// DefaultTopSettlements is the length of the top settlements ranking.
const DefaultTopSettlements = 10

// Option configures Overview.
type Option func(*config)

type config struct {
	topSettlements int
}

// WithTopSettlements sets the length of the top settlements ranking.
func WithTopSettlements(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.topSettlements = n
		}
	}
}

// Overview computes every aggregate of the dashboard for one filtered table.
func Overview(records []models.CaseRecord, vocab models.Vocabulary, opts ...Option) models.Overview {
	cfg := &config{topSettlements: DefaultTopSettlements}
	for _, opt := range opts {
		opt(cfg)
	}

	return models.Overview{
		Headline:          Headline(records),
		ByYear:            YearSeries(records),
		ByStatus:          CountBy(records, models.FieldStatus, vocab),
		ByClaimType:       CountBy(records, models.FieldClaimType, vocab),
		ByCategory:        CountBy(records, models.FieldCategory, vocab),
		ByJurisdiction:    CountBy(records, models.FieldJurisdiction, vocab),
		ByIndustry:        CountBy(records, models.FieldIndustry, vocab),
		ByChannel:         CountBy(records, models.FieldChannel, vocab),
		Settlements:       Settlements(records),
		TopSettlements:    TopSettlements(records, cfg.topSettlements),
		ClaimTrend:        YearByField(records, models.FieldClaimType, vocab),
		SettlementsByYear: SettlementByYear(records),
		ClaimSummary:      ClaimSummary(records, vocab),
		StatusShare:       StatusShare(records),
	}
}
