package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type ImportSource struct {
	Name   string `yaml:"name" json:"name"`
	URL    string `yaml:"url" json:"url"`
	Format string `yaml:"format" json:"format"` // "html" listing page (default) or "json" feed
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Catalog struct {
		PageLimitMax    int `yaml:"page_limit_max" json:"page_limit_max"`
		RetentionMonths int `yaml:"retention_months" json:"retention_months"`
	} `yaml:"catalog" json:"catalog"`

	Scoring struct {
		HighDemandFields    []string       `yaml:"high_demand_fields" json:"high_demand_fields"`
		CountryBonus        map[string]int `yaml:"country_bonus" json:"country_bonus"`
		DefaultCountryBonus int            `yaml:"default_country_bonus" json:"default_country_bonus"`
	} `yaml:"scoring" json:"scoring"`

	AI struct {
		Model          string  `yaml:"model" json:"model"`
		MaxCandidates  int     `yaml:"max_candidates" json:"max_candidates"`
		HistoryLimit   int     `yaml:"history_limit" json:"history_limit"`
		RequestsPerMin float64 `yaml:"requests_per_min" json:"requests_per_min"`
		KeyringAccount string  `yaml:"keyring_account" json:"keyring_account"`
	} `yaml:"ai" json:"ai"`

	Import struct {
		Sources []ImportSource `yaml:"sources" json:"sources"`
	} `yaml:"import" json:"import"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
