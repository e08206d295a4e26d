package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	var cfg Config
	cfg.App.Port = 38562

	out, vr := NormalizeAndValidate(cfg)
	require.True(t, vr.OK(), "errors: %v", vr.Errors)

	assert.Equal(t, DefaultHighDemandFields(), out.Scoring.HighDemandFields)
	assert.Equal(t, 8, out.Scoring.CountryBonus["Germany"])
	assert.Equal(t, 9, out.Scoring.CountryBonus["Netherlands"])
	assert.Equal(t, 5, out.Scoring.DefaultCountryBonus)
	assert.Equal(t, 20, out.AI.MaxCandidates)
	assert.Equal(t, 100, out.Catalog.PageLimitMax)
	assert.NotEmpty(t, out.AI.Model)
}

func TestNormalizeRejectsBadValues(t *testing.T) {
	var cfg Config
	cfg.App.Port = 0
	cfg.Scoring.CountryBonus = map[string]int{"Atlantis": 42}
	cfg.Import.Sources = []ImportSource{{Name: "x", URL: "ftp://nope"}}

	_, vr := NormalizeAndValidate(cfg)
	require.False(t, vr.OK())
	assert.Len(t, vr.Errors, 3)
}

func TestNormalizeDedupesFields(t *testing.T) {
	var cfg Config
	cfg.App.Port = 1
	cfg.Scoring.HighDemandFields = []string{" Medicine ", "medicine", "Law"}

	out, vr := NormalizeAndValidate(cfg)
	require.True(t, vr.OK())
	assert.Equal(t, []string{"Medicine", "Law"}, out.Scoring.HighDemandFields)
}
