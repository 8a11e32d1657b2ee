package analytics

import (
	"time"

	"github.com/bobmcallan/greenwash/internal/common"
	"github.com/bobmcallan/greenwash/internal/interfaces"
	"github.com/bobmcallan/greenwash/internal/models"
)

// Compile-time interface check
var _ interfaces.AnalyticsService = (*Service)(nil)

// Service implements AnalyticsService over the loaded dataset's vocabulary.
type Service struct {
	vocab  models.Vocabulary
	charts common.ChartsConfig
	logger *common.Logger
}

// NewService creates a new analytics service
func NewService(vocab models.Vocabulary, charts common.ChartsConfig, logger *common.Logger) *Service {
	return &Service{
		vocab:  vocab,
		charts: charts,
		logger: logger,
	}
}

// Overview aggregates a filtered view.
func (s *Service) Overview(view models.View) models.Overview {
	start := time.Now()
	ov := Overview(view.Records, s.vocab, WithTopSettlements(s.charts.TopSettlements))
	s.logger.Debug().
		Int("cases", view.Count()).
		Dur("elapsed", time.Since(start)).
		Msg("Overview computed")
	return ov
}
