package countries

import (
	"sort"
	"strings"
)

// Option is one entry of the select.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	// Default marks the country a fresh form starts with.
	Default bool `json:"default,omitempty"`
}

// Search filters countries by query. Prefix matches sort before other
// matches; otherwise the input order is kept.
func Search(countries []string, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]string{}, countries...)
	}

	q := strings.ToLower(query)
	matches := make([]matchedCountry, 0, len(countries))
	for _, country := range countries {
		lower := strings.ToLower(country)
		if !strings.Contains(lower, q) {
			continue
		}
		matches = append(matches, matchedCountry{
			name:     country,
			isPrefix: strings.HasPrefix(lower, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

// SearchOptions is Search shaped as select options.
func SearchOptions(countries []string, query, defaultCountry string) []Option {
	results := Search(countries, query)
	out := make([]Option, 0, len(results))
	for _, country := range results {
		out = append(out, Option{Value: country, Label: country, Default: country == defaultCountry})
	}
	return out
}

type matchedCountry struct {
	name     string
	isPrefix bool
}
