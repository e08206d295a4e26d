package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a cleaned-up copy plus anything worth telling
// the user about. Normalization fills the defaults the scorer and catalog
// rely on, so a sparse config file still yields a fully working engine.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Scoring.HighDemandFields = trimList(out.Scoring.HighDemandFields)
	if len(out.Scoring.HighDemandFields) == 0 {
		out.Scoring.HighDemandFields = DefaultHighDemandFields()
	}
	if len(out.Scoring.CountryBonus) == 0 {
		out.Scoring.CountryBonus = DefaultCountryBonus()
	}
	if out.Scoring.DefaultCountryBonus <= 0 {
		out.Scoring.DefaultCountryBonus = 5
	}
	for country, bonus := range out.Scoring.CountryBonus {
		if bonus < 0 || bonus > 10 {
			res.addErr("scoring.country_bonus[%s] must be 0..10, got %d", country, bonus)
		}
	}
	if out.Scoring.DefaultCountryBonus > 10 {
		res.addErr("scoring.default_country_bonus must be 0..10")
	}

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Catalog.PageLimitMax <= 0 {
		out.Catalog.PageLimitMax = 100
	}
	if out.Catalog.RetentionMonths <= 0 {
		out.Catalog.RetentionMonths = 3
	}

	if strings.TrimSpace(out.AI.Model) == "" {
		out.AI.Model = "gemini-2.5-flash"
	}
	if out.AI.MaxCandidates <= 0 || out.AI.MaxCandidates > 20 {
		out.AI.MaxCandidates = 20
	}
	if out.AI.HistoryLimit <= 0 {
		out.AI.HistoryLimit = 20
	}
	if out.AI.RequestsPerMin <= 0 {
		out.AI.RequestsPerMin = 30
	}
	if strings.TrimSpace(out.AI.KeyringAccount) == "" {
		out.AI.KeyringAccount = "default"
	}

	var sources []ImportSource
	for i, src := range out.Import.Sources {
		src.Name = strings.TrimSpace(src.Name)
		src.URL = strings.TrimSpace(src.URL)
		if src.Name == "" {
			res.addErr("import.sources[%d].name is required", i)
			continue
		}
		if src.URL == "" {
			res.addErr("import.sources[%d].url is required", i)
			continue
		}
		if u, err := url.Parse(src.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			res.addErr("import.sources[%d].url must be http(s), got %q", i, src.URL)
			continue
		}
		src.Format = strings.ToLower(strings.TrimSpace(src.Format))
		if src.Format == "" {
			src.Format = "html"
		}
		if src.Format != "html" && src.Format != "json" {
			res.addErr("import.sources[%d].format must be html or json, got %q", i, src.Format)
			continue
		}
		sources = append(sources, src)
	}
	out.Import.Sources = sources

	if len(sources) == 0 {
		res.addWarn("no import sources configured; catalog fills only via /seed")
	}

	return out, res
}

// DefaultHighDemandFields is the built-in field list used when the config
// omits one. Kept as data, not policy: edit config.yml to change it.
func DefaultHighDemandFields() []string {
	return []string{"Computer Science", "Engineering", "Medicine", "Data Science"}
}

// DefaultCountryBonus is the built-in destination adjustment table.
func DefaultCountryBonus() map[string]int {
	return map[string]int{
		"United States":  10,
		"United Kingdom": 9,
		"Netherlands":    9,
		"Canada":         9,
		"Germany":        8,
		"Australia":      8,
		"Sweden":         7,
		"France":         7,
	}
}
