package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bobmcallan/greenwash/internal/common"
	"github.com/bobmcallan/greenwash/internal/models"
)

func TestVocabularyFromConfig(t *testing.T) {
	v := VocabularyFromConfig(common.VocabularyConfig{
		ClaimTypes: []string{"Carbon Neutral"},
		Channels:   []string{"Packaging", "TV"},
	})

	assert.Equal(t, []string{"Carbon Neutral"}, v.Values(models.FieldClaimType))
	assert.Equal(t, []string{"Packaging", "TV"}, v.Values(models.FieldChannel))
	assert.Empty(t, v.Values(models.FieldJurisdiction))
	assert.Empty(t, v.Values(models.FieldStatus), "status uses the fixed status groups")
}
