package domain

import "strings"

// SuggestionType identifies which source a suggestion came from.
type SuggestionType string

const (
	SuggestionListing  SuggestionType = "listing"
	SuggestionCategory SuggestionType = "category"
	SuggestionLocation SuggestionType = "location"
)

// Suggestion is a single autocomplete candidate.
type Suggestion struct {
	Type  SuggestionType `json:"type"`
	Value string         `json:"value"`
}

// SuggestionWindow caps the listing over-fetch for autocomplete.
const SuggestionWindow = 20

// knownLocations is the static city list appended to autocomplete after
// listing and category matches.
var knownLocations = []string{
	"Paris", "Lyon", "Marseille", "Toulouse", "Bordeaux", "Lille",
	"Nantes", "Strasbourg", "Nice", "Rennes", "Montpellier", "Grenoble",
}

// MatchingCategories returns canonical category names whose name or any
// variant contains the partial query (case- and accent-insensitive).
func MatchingCategories(partial string) []string {
	folded := foldName(partial)
	if folded == "" {
		return nil
	}

	var out []string
	for i := range categoryTable {
		e := &categoryTable[i]
		if nameMatches(e, folded) {
			out = append(out, e.canonical)
		}
	}
	return out
}

func nameMatches(e *synonymEntry, folded string) bool {
	if strings.Contains(foldName(e.canonical), folded) {
		return true
	}
	for _, v := range e.variants {
		if strings.Contains(foldName(v), folded) {
			return true
		}
	}
	return false
}

// MatchingLocations returns known city names containing the partial query.
func MatchingLocations(partial string) []string {
	folded := foldName(partial)
	if folded == "" {
		return nil
	}

	var out []string
	for _, city := range knownLocations {
		if strings.Contains(foldName(city), folded) {
			out = append(out, city)
		}
	}
	return out
}
