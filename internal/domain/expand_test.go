package domain

import (
	"testing"
)

func TestExpandQueryText_CaseVariants(t *testing.T) {
	variants := ExpandQueryText("vélo électrique")

	want := []string{
		"vélo électrique", // original
		"VÉLO ÉLECTRIQUE", // uppercase
		"Vélo électrique", // capitalized
	}
	for _, w := range want {
		if !containsString(variants, w) {
			t.Errorf("ExpandQueryText() = %v, missing %q", variants, w)
		}
	}
}

func TestExpandQueryText_BrandCasing(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"iphone 13", "iPhone 13"},
		{"IPHONE 13", "iPhone 13"}, // brand replacement runs on the lowercase form
		{"coque ipad", "coque iPad"},
		{"macbook pro", "MacBook pro"},
		{"ps5 neuve", "PS5 neuve"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			variants := ExpandQueryText(tt.query)
			if !containsString(variants, tt.want) {
				t.Errorf("ExpandQueryText(%q) = %v, missing %q", tt.query, variants, tt.want)
			}
		})
	}
}

func TestExpandQueryText_CasingVariantsOnly(t *testing.T) {
	// Brand expansion re-spells the query; it must never append product
	// words the user did not type, which would widen matching and let a
	// longer title count as an exact match.
	variants := ExpandQueryText("macbook")

	for _, v := range variants {
		if len(v) != len("macbook") {
			t.Errorf("ExpandQueryText(%q) produced %q, want casing-only variants", "macbook", v)
		}
	}
}

func TestExpandQueryText_OriginalFirst(t *testing.T) {
	variants := ExpandQueryText("Samsung Galaxy")
	if len(variants) == 0 || variants[0] != "Samsung Galaxy" {
		t.Errorf("ExpandQueryText() = %v, want original form first", variants)
	}
}

func TestExpandQueryText_NoDuplicates(t *testing.T) {
	// An all-lowercase single word: original == lower, and capitalized may
	// collide with a brand casing. Every form must appear once.
	variants := ExpandQueryText("samsung")

	seen := make(map[string]int)
	for _, v := range variants {
		seen[v]++
	}
	for v, n := range seen {
		if n > 1 {
			t.Errorf("variant %q appears %d times", v, n)
		}
	}
}

func TestExpandQueryText_Empty(t *testing.T) {
	if got := ExpandQueryText("   "); got != nil {
		t.Errorf("ExpandQueryText(blank) = %v, want nil", got)
	}
	if got := ExpandQueryText(""); got != nil {
		t.Errorf("ExpandQueryText(\"\") = %v, want nil", got)
	}
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
