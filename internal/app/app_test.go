package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/greenwash/internal/common"
	"github.com/bobmcallan/greenwash/internal/models"
)

const testCSV = `case_name,Product/Company,claim_type,sub_category,current_status,jurisdiction,settlement_amount,ruling_description,sources
A v. B,B Corp,Recyclability,Plastics,Settled,California,$2 million,,
C v. D,D Corp,Carbon Neutral,Offsets,Pending,New York,,,
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewAppWithConfig_LoadsDataset(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Dataset.Path = writeFile(t, t.TempDir(), "cases.csv", testCSV)
	cfg.Vocabulary.ClaimTypes = []string{"Vegan"}

	a := NewAppWithConfig(cfg, common.NewSilentLogger())

	require.True(t, a.Ready())
	assert.NoError(t, a.LoadErr)
	assert.Equal(t, 2, a.CaseCount())
	assert.NotNil(t, a.CaseService)
	assert.NotNil(t, a.AnalyticsService)
	assert.NotNil(t, a.ChartService)
	assert.Equal(t, []string{"Carbon Neutral", "Recyclability", "Vegan"}, a.Dataset.Vocabulary.Values(models.FieldClaimType))
}

func TestNewAppWithConfig_MissingDatasetIsBlocked(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Dataset.Path = filepath.Join(t.TempDir(), "missing.csv")

	a := NewAppWithConfig(cfg, common.NewSilentLogger())

	assert.False(t, a.Ready())
	assert.Equal(t, -1, a.CaseCount())
	var le *models.LoadError
	require.True(t, errors.As(a.LoadErr, &le))
	assert.Equal(t, "file not found", le.Reason)
	assert.Nil(t, a.CaseService)
}

func TestNewApp_DatasetOverride(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "cases.csv", testCSV)
	configPath := writeFile(t, dir, "greenwash.toml", "[dataset]\npath = \"elsewhere.csv\"\n\n[logging]\nlevel = \"error\"\n")
	t.Setenv("GREENWASH_DATASET", "")

	a, err := NewApp(configPath, csvPath)

	require.NoError(t, err)
	assert.Equal(t, csvPath, a.Config.Dataset.Path)
	assert.True(t, a.Ready())
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("GREENWASH_CONFIG", "/etc/greenwash.toml")
	assert.Equal(t, "explicit.toml", ResolveConfigPath("explicit.toml"))
	assert.Equal(t, "/etc/greenwash.toml", ResolveConfigPath(""))
}
