package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePage = `
<html><body>
<div class="program-card" data-id="tud-msc-cs">
  <h3 class="program-name">MSc  Computer&nbsp;Science</h3>
  <span class="university">TU Delft</span>
  <span class="country">Netherlands</span>
  <span class="field">Computer Science</span>
  <span class="degree">MSc</span>
  <span class="tuition">€18,750</span>
  <span class="deadline">2027-03-15</span>
  <span class="duration">2 years</span>
  <span class="language">English</span>
  <span class="scholarship">$5,000</span>
  <span class="ranking" data-rank="47"></span>
  <p class="description">Research masters in computing.</p>
</div>
<div class="program-card">
  <h3 class="program-name">Doctorate in History</h3>
  <span class="university">Heidelberg University</span>
  <span class="country">Germany</span>
  <span class="degree">Doctoral programme</span>
  <span class="tuition">free</span>
  <span class="duration">36 months</span>
</div>
<div class="program-card">
  <!-- junk card without a name, must be skipped -->
  <span class="university">Nowhere U</span>
</div>
</body></html>`

func TestParseProgramsFixture(t *testing.T) {
	out, err := ParsePrograms(strings.NewReader(fixturePage), "partners")
	require.NoError(t, err)
	require.Len(t, out, 2, "nameless card is dropped")

	cs := out[0]
	assert.Equal(t, "MSc Computer Science", cs.Name)
	assert.Equal(t, "TU Delft", cs.University)
	assert.Equal(t, "Netherlands", cs.Country)
	assert.Equal(t, "Master", cs.Degree)
	require.NotNil(t, cs.Tuition)
	assert.Equal(t, 18750.0, *cs.Tuition)
	assert.Equal(t, "EUR", cs.Currency)
	require.NotNil(t, cs.Deadline)
	assert.Equal(t, "2027-03-15", cs.Deadline.Format("2006-01-02"))
	assert.Equal(t, 24, cs.DurationMonths)
	assert.Equal(t, 5000.0, cs.Scholarship)
	assert.Equal(t, 47, cs.Ranking)
	assert.Equal(t, "partners:tud-msc-cs", cs.SourceID)

	phd := out[1]
	assert.Equal(t, "PhD", phd.Degree)
	assert.Nil(t, phd.Tuition, "free tuition parses as unknown-cost, not zero-fee exclusion")
	assert.Equal(t, 36, phd.DurationMonths)
	assert.Equal(t, "partners:heidelberg-university-doctorate-in-history", phd.SourceID)
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in       string
		amount   float64
		currency string
		ok       bool
	}{
		{"€18,750", 18750, "EUR", true},
		{"$5,000", 5000, "USD", true},
		{"£9,250", 9250, "GBP", true},
		{"12000 CAD", 12000, "CAD", true},
		{"€0", 0, "EUR", true},
		{"free", 0, "", false},
		{"", 0, "", false},
		{"contact us", 0, "", false},
	}
	for _, c := range cases {
		amount, currency, ok := parseMoney(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		if c.ok {
			assert.Equal(t, c.amount, amount, c.in)
			assert.Equal(t, c.currency, currency, c.in)
		}
	}
}

func TestNormalizeDegree(t *testing.T) {
	assert.Equal(t, "Bachelor", normalizeDegree("BSc"))
	assert.Equal(t, "Master", normalizeDegree("Master of Science"))
	assert.Equal(t, "PhD", normalizeDegree("Doctoral programme"))
	assert.Equal(t, "Diploma", normalizeDegree("Graduate Diploma"))
	assert.Equal(t, "Something Odd", normalizeDegree("Something Odd"))
}
