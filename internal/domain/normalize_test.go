package domain

import (
	"strings"
	"testing"
)

func TestNormalize_Category(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		canonical string
		known     bool
	}{
		{"canonical spelling", "Électronique", "Électronique", true},
		{"unaccented lowercase", "electronique", "Électronique", true},
		{"english variant", "electronics", "Électronique", true},
		{"slug variant", "high-tech", "Électronique", true},
		{"uppercase with padding", "  ELECTRONIQUE  ", "Électronique", true},
		{"vehicles variant", "autos", "Véhicules", true},
		{"accented input for unaccented variant", "véhicules", "Véhicules", true},
		{"unknown category", "bateaux", "bateaux", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(KindCategory, tt.input)
			if got.Canonical != tt.canonical {
				t.Errorf("Normalize(%q).Canonical = %q, want %q", tt.input, got.Canonical, tt.canonical)
			}
			if got.Known != tt.known {
				t.Errorf("Normalize(%q).Known = %v, want %v", tt.input, got.Known, tt.known)
			}
		})
	}
}

func TestNormalize_Subcategory(t *testing.T) {
	got := Normalize(KindSubcategory, "smartphones")
	if got.Canonical != "Téléphones" {
		t.Errorf("Canonical = %q, want %q", got.Canonical, "Téléphones")
	}
	if !got.Known {
		t.Error("Known = false, want true")
	}
}

func TestNormalize_Condition(t *testing.T) {
	tests := []struct {
		input     string
		canonical string
	}{
		{"like new", "Comme neuf"},
		{"tres bon etat", "Bon état"},
		{"très bon état", "Bon état"},
		{"for parts", "Pour pièces"},
		{"NEUF", "Neuf"},
	}

	for _, tt := range tests {
		got := Normalize(KindCondition, tt.input)
		if got.Canonical != tt.canonical {
			t.Errorf("Normalize(%q).Canonical = %q, want %q", tt.input, got.Canonical, tt.canonical)
		}
	}
}

// Normalizing an already-canonical label must return the same label, so the
// operation can safely run twice over imported data.
func TestNormalize_Idempotent(t *testing.T) {
	for _, kind := range []NameKind{KindCategory, KindSubcategory, KindCondition} {
		for raw := range map[string]struct{}{"electronique": {}, "voitures": {}, "neuf": {}} {
			first := Normalize(kind, raw)
			second := Normalize(kind, first.Canonical)
			if second.Canonical != first.Canonical {
				t.Errorf("kind %s: Normalize(Normalize(%q)) = %q, want %q",
					kind, raw, second.Canonical, first.Canonical)
			}
		}
	}
}

func TestNormalize_UnknownFallback(t *testing.T) {
	got := Normalize(KindCategory, "trucs improbables")

	if got.Known {
		t.Error("Known = true, want false")
	}
	if got.Canonical != "trucs improbables" {
		t.Errorf("Canonical = %q, want raw input back", got.Canonical)
	}
	if len(got.Variants) != 1 || got.Variants[0] != "trucs improbables" {
		t.Errorf("Variants = %v, want single-element set with raw input", got.Variants)
	}
}

func TestNormalize_Empty(t *testing.T) {
	got := Normalize(KindCategory, "   ")
	if got.Canonical != "" || got.Variants != nil || got.Known {
		t.Errorf("Normalize(blank) = %+v, want zero value", got)
	}
}

func TestMatchSet_LowersAndDedupes(t *testing.T) {
	n := Normalize(KindCondition, "neuf")
	set := n.MatchSet()

	if len(set) == 0 {
		t.Fatal("MatchSet() is empty")
	}

	seen := make(map[string]struct{}, len(set))
	for _, v := range set {
		if v != strings.ToLower(v) {
			t.Errorf("MatchSet() contains non-lowercase entry %q", v)
		}
		if _, dup := seen[v]; dup {
			t.Errorf("MatchSet() contains duplicate %q", v)
		}
		seen[v] = struct{}{}
	}

	// "Neuf" canonical and "neuf" variant collapse to one entry.
	count := 0
	for _, v := range set {
		if v == "neuf" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("MatchSet() has %d entries for %q, want 1", count, "neuf")
	}
}

func TestMatchSet_KeepsAccents(t *testing.T) {
	set := Normalize(KindCategory, "electronique").MatchSet()

	hasAccented := false
	for _, v := range set {
		if v == "électronique" {
			hasAccented = true
		}
	}
	if !hasAccented {
		t.Errorf("MatchSet() = %v, want accented %q included", set, "électronique")
	}
}
