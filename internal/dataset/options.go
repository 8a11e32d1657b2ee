package dataset

import (
	"github.com/bobmcallan/greenwash/internal/common"
	"github.com/bobmcallan/greenwash/internal/models"
)

// Option configures the loader.
type Option func(*config)

type config struct {
	vocabulary models.Vocabulary
	logger     *common.Logger
}

// WithVocabulary seeds the categorical vocabularies with values known ahead of the data.
func WithVocabulary(v models.Vocabulary) Option {
	return func(c *config) {
		c.vocabulary = v
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *common.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		logger: common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// VocabularyFromConfig converts the configured vocabulary lists.
func VocabularyFromConfig(c common.VocabularyConfig) models.Vocabulary {
	return models.Vocabulary{
		models.FieldClaimType:    c.ClaimTypes,
		models.FieldCategory:     c.Categories,
		models.FieldJurisdiction: c.Jurisdictions,
		models.FieldIndustry:     c.Industries,
		models.FieldChannel:      c.Channels,
	}
}
