// Package tagger derives topic labels from slide text by keyword
// matching. Tagging is a pure function: no side effects, no external
// calls, deterministic for a given input.
package tagger

import (
	"strings"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
)

// keywordGroups map a fixed label to the substrings that trigger it.
// Each matching group contributes its label exactly once.
var keywordGroups = []struct {
	label    string
	keywords []string
}{
	{"Design", []string{"design", "architecture", "ui", "ux"}},
	{"Test", []string{"test", "qa", "verification"}},
	{"Migration", []string{"migration", "migrate"}},
}

// domainTokens contribute their capitalized form when present.
var domainTokens = []string{
	"claims", "membership", "provider", "finance", "medicaid", "commercial",
}

// Tag labels the given text. Matching is case-insensitive substring
// membership. Text matching nothing yields the single label General.
func Tag(text string) domain.TagSet {
	lower := strings.ToLower(text)

	var labels []string
	for _, group := range keywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				labels = append(labels, group.label)
				break
			}
		}
	}

	for _, token := range domainTokens {
		if strings.Contains(lower, token) {
			labels = append(labels, capitalize(token))
		}
	}

	if len(labels) == 0 {
		labels = []string{domain.TagGeneral}
	}
	return domain.NewTagSet(labels...)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
