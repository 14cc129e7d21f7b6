package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NameKind selects which synonym table a normalization runs against.
type NameKind string

const (
	KindCategory    NameKind = "category"
	KindSubcategory NameKind = "subcategory"
	KindCondition   NameKind = "condition"
)

// CanonicalName is the result of a normalization: the preferred label plus
// the full set of accepted variant spellings (canonical included).
type CanonicalName struct {
	Canonical string
	Variants  []string
	// Known is false when the input matched no table entry and the raw
	// input was returned as its own single-element variant set.
	Known bool
}

// synonymEntry is one row of a static synonym table.
type synonymEntry struct {
	canonical string
	variants  []string
}

// The tables list each canonical label with its known spelling, translation,
// and slug variants. Loaded into fold-keyed indexes at init, immutable after.
var categoryTable = []synonymEntry{
	{"Électronique", []string{"electronique", "electronics", "electro", "high-tech", "hightech", "high tech"}},
	{"Véhicules", []string{"vehicules", "vehicles", "auto", "autos", "automobile", "automobiles"}},
	{"Immobilier", []string{"immo", "real estate", "real-estate", "realestate"}},
	{"Mode", []string{"vetements", "vêtements", "clothing", "clothes", "fashion"}},
	{"Maison & Jardin", []string{"maison", "jardin", "maison et jardin", "home & garden", "home-garden", "home"}},
	{"Sports & Loisirs", []string{"sports", "sport", "loisirs", "loisir", "hobbies", "sports-loisirs"}},
	{"Emploi", []string{"jobs", "job", "travail", "employment"}},
	{"Services", []string{"service", "prestations"}},
	{"Animaux", []string{"animaux", "pets", "animal"}},
}

var subcategoryTable = []synonymEntry{
	{"Téléphones", []string{"telephones", "telephone", "phones", "phone", "smartphones", "smartphone", "mobiles"}},
	{"Ordinateurs", []string{"ordinateur", "computers", "computer", "laptops", "laptop", "pc"}},
	{"Consoles & Jeux vidéo", []string{"consoles", "console", "jeux video", "jeux-video", "video games", "gaming"}},
	{"Photo & Audio", []string{"photo", "audio", "appareils photo", "cameras", "hifi", "hi-fi"}},
	{"Voitures", []string{"voiture", "cars", "car"}},
	{"Motos", []string{"moto", "motorcycles", "motorcycle", "scooters", "scooter"}},
	{"Appartements", []string{"appartement", "apartments", "apartment", "appart", "flats", "flat"}},
	{"Maisons", []string{"maisons a vendre", "houses", "house", "villas", "villa"}},
	{"Meubles", []string{"meuble", "furniture", "mobilier"}},
	{"Électroménager", []string{"electromenager", "appliances", "appliance"}},
}

var conditionTable = []synonymEntry{
	{"Neuf", []string{"neuf", "new", "brand new", "brand-new", "neuve", "jamais utilise"}},
	{"Comme neuf", []string{"comme-neuf", "like new", "like-new", "excellent", "quasi neuf"}},
	{"Bon état", []string{"bon-etat", "good", "good condition", "tres bon etat", "très bon état"}},
	{"État moyen", []string{"etat-moyen", "fair", "average", "usage"}},
	{"Pour pièces", []string{"pour-pieces", "for parts", "for-parts", "pieces", "hs", "a reparer"}},
}

// nameIndex maps fold(variant) -> entry for one kind.
type nameIndex map[string]*synonymEntry

var nameIndexes = func() map[NameKind]nameIndex {
	idx := make(map[NameKind]nameIndex, 3)
	for kind, table := range map[NameKind][]synonymEntry{
		KindCategory:    categoryTable,
		KindSubcategory: subcategoryTable,
		KindCondition:   conditionTable,
	} {
		m := make(nameIndex)
		for i := range table {
			e := &table[i]
			m[foldName(e.canonical)] = e
			for _, v := range e.variants {
				m[foldName(v)] = e
			}
		}
		idx[kind] = m
	}
	return idx
}()

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldName lowercases, trims, and strips accents so that "Électronique",
// "electronique" and " ELECTRONIQUE " all resolve to the same key.
func foldName(s string) string {
	stripped, _, err := transform.String(accentStripper, s)
	if err != nil {
		stripped = s
	}
	return strings.ToLower(strings.TrimSpace(stripped))
}

// Normalize resolves a free-form name against the synonym table for kind.
// Lookup is case- and accent-insensitive. On no match it degrades gracefully:
// the raw input becomes its own single-element variant set, so the filter
// builder can still fall back to a string-membership scan. Never fails.
func Normalize(kind NameKind, raw string) CanonicalName {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CanonicalName{Canonical: "", Variants: nil}
	}

	if entry, ok := nameIndexes[kind][foldName(raw)]; ok {
		variants := make([]string, 0, len(entry.variants)+1)
		variants = append(variants, entry.canonical)
		variants = append(variants, entry.variants...)
		return CanonicalName{Canonical: entry.canonical, Variants: variants, Known: true}
	}

	return CanonicalName{Canonical: raw, Variants: []string{raw}}
}

// MatchSet returns the variant set lowercased and deduplicated, ready for
// case-insensitive SQL membership filters. Accents are kept: the tables
// already enumerate accented and unaccented spellings side by side.
func (n CanonicalName) MatchSet() []string {
	if len(n.Variants) == 0 {
		return nil
	}
	out := make([]string, 0, len(n.Variants))
	seen := make(map[string]struct{}, len(n.Variants))
	for _, v := range n.Variants {
		lowered := strings.ToLower(strings.TrimSpace(v))
		if _, dup := seen[lowered]; dup {
			continue
		}
		seen[lowered] = struct{}{}
		out = append(out, lowered)
	}
	return out
}
