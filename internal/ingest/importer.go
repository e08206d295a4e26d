package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"scholarpath-engine/internal/store"
)

// ParsePrograms reads a catalog listing page and returns one ProgramInsert
// per ".program-card" element. Partner universities export this markup:
//
//	<div class="program-card" data-id="tud-msc-cs">
//	  <h3 class="program-name">MSc Computer Science</h3>
//	  <span class="university">TU Delft</span>
//	  <span class="country">Netherlands</span>
//	  <span class="field">Computer Science</span>
//	  <span class="degree">Master</span>
//	  <span class="tuition">€18,750</span>
//	  <span class="deadline">2027-03-15</span>
//	  <span class="duration">24 months</span>
//	  <span class="language">English</span>
//	  <span class="scholarship">$5,000</span>
//	  <p class="description">...</p>
//	</div>
//
// Missing elements degrade to zero values; a card without a name is skipped.
func ParsePrograms(r io.Reader, sourceName string) ([]store.ProgramInsert, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse catalog html: %w", err)
	}

	var out []store.ProgramInsert
	doc.Find(".program-card").Each(func(i int, card *goquery.Selection) {
		name := cleanText(card.Find(".program-name").First().Text())
		if name == "" {
			return
		}

		in := store.ProgramInsert{
			Name:        name,
			University:  cleanText(card.Find(".university").First().Text()),
			Country:     cleanText(card.Find(".country").First().Text()),
			Field:       cleanText(card.Find(".field").First().Text()),
			Degree:      normalizeDegree(cleanText(card.Find(".degree").First().Text())),
			Language:    cleanText(card.Find(".language").First().Text()),
			Description: cleanText(card.Find(".description").First().Text()),
		}

		if amount, currency, ok := parseMoney(card.Find(".tuition").First().Text()); ok {
			in.Tuition = &amount
			in.Currency = currency
		}
		if amount, _, ok := parseMoney(card.Find(".scholarship").First().Text()); ok {
			in.Scholarship = amount
		}
		if d, ok := parseDeadline(cleanText(card.Find(".deadline").First().Text())); ok {
			in.Deadline = &d
		}
		in.DurationMonths = parseMonths(cleanText(card.Find(".duration").First().Text()))
		if r, ok := card.Find(".ranking").First().Attr("data-rank"); ok {
			in.Ranking, _ = strconv.Atoi(strings.TrimSpace(r))
		}

		if id, ok := card.Attr("data-id"); ok && strings.TrimSpace(id) != "" {
			in.SourceID = sourceName + ":" + strings.TrimSpace(id)
		} else {
			in.SourceID = sourceName + ":" + slugify(in.University+"-"+name)
		}

		out = append(out, in)
	})

	return out, nil
}

// parseMoney handles "€18,750", "$5,000 USD", "12000" and friends. An
// unparsable amount, "free" or "none" reports ok=false so unknown stays
// unknown; an explicit "€0" is a known zero cost and reports ok=true.
func parseMoney(raw string) (amount float64, currency string, ok bool) {
	raw = cleanText(raw)
	if raw == "" || strings.EqualFold(raw, "free") || strings.EqualFold(raw, "none") {
		return 0, "", false
	}

	switch {
	case strings.ContainsRune(raw, '€'):
		currency = "EUR"
	case strings.ContainsRune(raw, '£'):
		currency = "GBP"
	case strings.ContainsRune(raw, '$'):
		currency = "USD"
	}

	var digits strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, "", false
	}
	amount, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil || amount < 0 {
		return 0, "", false
	}
	if fields := strings.Fields(raw); currency == "" && len(fields) > 1 {
		last := strings.ToUpper(fields[len(fields)-1])
		if len(last) == 3 && strings.IndexFunc(last, func(r rune) bool { return r < 'A' || r > 'Z' }) == -1 {
			currency = last
		}
	}
	return amount, currency, true
}

func parseDeadline(raw string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "January 2, 2006", "2 January 2006"} {
		if d, err := time.Parse(layout, raw); err == nil {
			return d.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseMonths(raw string) int {
	fields := strings.Fields(strings.ToLower(raw))
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0
	}
	if len(fields) > 1 && strings.HasPrefix(fields[1], "year") {
		return n * 12
	}
	return n
}

func normalizeDegree(raw string) string {
	l := strings.ToLower(raw)
	switch {
	case strings.Contains(l, "bachelor") || l == "bsc" || l == "ba":
		return "Bachelor"
	case strings.Contains(l, "master") || l == "msc" || l == "ma":
		return "Master"
	case strings.Contains(l, "phd") || strings.Contains(l, "doctor"):
		return "PhD"
	case strings.Contains(l, "certificate"):
		return "Certificate"
	case strings.Contains(l, "diploma"):
		return "Diploma"
	default:
		return raw
	}
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
