package domain

import (
	"strings"
	"unicode"
)

// brandCasings maps a lowercase brand token to its marketing capitalizations.
// Stored listing text is inconsistently cased and the store has no
// case-insensitive text index, so substring matching needs these spellings.
var brandCasings = map[string][]string{
	"iphone":      {"iPhone", "IPHONE"},
	"ipad":        {"iPad", "IPAD"},
	"imac":        {"iMac"},
	"macbook":     {"MacBook", "MACBOOK"},
	"airpods":     {"AirPods"},
	"samsung":     {"Samsung", "SAMSUNG"},
	"playstation": {"PlayStation", "PLAYSTATION"},
	"ps5":         {"PS5"},
	"ps4":         {"PS4"},
	"xbox":        {"Xbox", "XBOX"},
	"nintendo":    {"Nintendo"},
	"gopro":       {"GoPro"},
	"jbl":         {"JBL"},
	"lg":          {"LG"},
	"huawei":      {"Huawei", "HUAWEI"},
	"xiaomi":      {"Xiaomi"},
}

// ExpandQueryText produces the case variants of a raw search string used to
// widen substring matching: the original, lowercase, UPPERCASE, Capitalized,
// plus any brand-casing overrides for brand tokens in the query.
//
// This is a documented workaround for the absence of a case-insensitive or
// tokenized text index in the backing store. A backend with a
// case-insensitive collation or trigram/full-text index should match there
// instead and keep this expansion only as a fallback.
func ExpandQueryText(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	variants := make([]string, 0, 8)
	seen := make(map[string]struct{}, 8)
	add := func(v string) {
		if v == "" {
			return
		}
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}

	lower := strings.ToLower(trimmed)

	add(trimmed)
	add(lower)
	add(strings.ToUpper(trimmed))
	add(capitalizeFirst(lower))

	// Brand overrides: replace each known brand token with its marketing
	// spellings inside the lowercase form.
	for _, token := range strings.Fields(lower) {
		casings, ok := brandCasings[token]
		if !ok {
			continue
		}
		for _, cased := range casings {
			add(strings.ReplaceAll(lower, token, cased))
		}
	}

	return variants
}

// capitalizeFirst upper-cases only the first rune of s.
func capitalizeFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}
