package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureFeed = `[
  {
    "id": "eth-msc-ds",
    "name": "MSc Data Science",
    "university": "ETH Zurich",
    "country": "Switzerland",
    "field": "Data Science",
    "degree": "Master of Science",
    "tuition": 1460,
    "currency": "chf",
    "deadline": "2027-12-15",
    "durationMonths": 24,
    "language": "English",
    "scholarship": 8000,
    "ranking": 7,
    "description": "Statistics and machine learning track."
  },
  {
    "name": "BA History",
    "university": "Uppsala University",
    "country": "Sweden",
    "degree": "BA",
    "durationMonths": -3
  },
  {
    "university": "Nameless U"
  }
]`

func TestParseProgramsJSONFeed(t *testing.T) {
	out, err := ParseProgramsJSON(strings.NewReader(fixtureFeed), "api")
	require.NoError(t, err)
	require.Len(t, out, 2, "nameless entry is dropped")

	ds := out[0]
	assert.Equal(t, "MSc Data Science", ds.Name)
	assert.Equal(t, "Master", ds.Degree)
	assert.Equal(t, "CHF", ds.Currency)
	require.NotNil(t, ds.Tuition)
	assert.Equal(t, 1460.0, *ds.Tuition)
	require.NotNil(t, ds.Deadline)
	assert.Equal(t, "2027-12-15", ds.Deadline.Format("2006-01-02"))
	assert.Equal(t, 8000.0, ds.Scholarship)
	assert.Equal(t, 7, ds.Ranking)
	assert.Equal(t, "api:eth-msc-ds", ds.SourceID)

	ba := out[1]
	assert.Equal(t, "Bachelor", ba.Degree)
	assert.Nil(t, ba.Tuition)
	assert.Equal(t, 0, ba.DurationMonths, "negative duration degrades to unknown")
	assert.Equal(t, "api:uppsala-university-ba-history", ba.SourceID)
}

func TestParseProgramsJSONRejectsNonArray(t *testing.T) {
	_, err := ParseProgramsJSON(strings.NewReader(`{"not": "an array"}`), "api")
	require.Error(t, err)
}
