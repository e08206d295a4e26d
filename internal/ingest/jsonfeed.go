package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"scholarpath-engine/internal/store"
)

// jsonProgram is one entry of a catalog JSON export. Partner feeds that
// expose an API instead of listing pages serve an array of these.
type jsonProgram struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	University     string   `json:"university"`
	Country        string   `json:"country"`
	Field          string   `json:"field"`
	Degree         string   `json:"degree"`
	Tuition        *float64 `json:"tuition"`
	Currency       string   `json:"currency"`
	Deadline       string   `json:"deadline"`
	DurationMonths int      `json:"durationMonths"`
	Language       string   `json:"language"`
	Scholarship    float64  `json:"scholarship"`
	Ranking        int      `json:"ranking"`
	Description    string   `json:"description"`
}

// ParseProgramsJSON reads a JSON catalog feed. Same leniency as the HTML
// parser: entries without a name are skipped, unknown fields stay zero.
func ParseProgramsJSON(r io.Reader, sourceName string) ([]store.ProgramInsert, error) {
	var entries []jsonProgram
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parse catalog json: %w", err)
	}

	var out []store.ProgramInsert
	for _, e := range entries {
		name := cleanText(e.Name)
		if name == "" {
			continue
		}

		in := store.ProgramInsert{
			Name:           name,
			University:     cleanText(e.University),
			Country:        cleanText(e.Country),
			Field:          cleanText(e.Field),
			Degree:         normalizeDegree(cleanText(e.Degree)),
			Currency:       strings.ToUpper(cleanText(e.Currency)),
			DurationMonths: e.DurationMonths,
			Language:       cleanText(e.Language),
			Description:    cleanText(e.Description),
			Ranking:        e.Ranking,
		}
		if e.Tuition != nil && *e.Tuition > 0 {
			t := *e.Tuition
			in.Tuition = &t
		}
		if e.Scholarship > 0 {
			in.Scholarship = e.Scholarship
		}
		if d, ok := parseDeadline(cleanText(e.Deadline)); ok {
			in.Deadline = &d
		}
		if in.DurationMonths < 0 {
			in.DurationMonths = 0
		}

		if id := strings.TrimSpace(e.ID); id != "" {
			in.SourceID = sourceName + ":" + id
		} else {
			in.SourceID = sourceName + ":" + slugify(in.University+"-"+name)
		}

		out = append(out, in)
	}
	return out, nil
}
