package domain

import (
	"testing"
	"time"
)

func mkListing(title string, age time.Duration) *Listing {
	return &Listing{
		Title:     title,
		CreatedAt: time.Now().Add(-age),
	}
}

func titles(listings []*Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.Title
	}
	return out
}

func TestRankByRelevance_Ordering(t *testing.T) {
	// Seeded worst-rank-first and newest-first: a naive recency sort would
	// keep this order, relevance must invert it.
	listings := []*Listing{
		mkListing("Support mural TV", 1*time.Hour),     // no match
		mkListing("Coque pour iPhone 13", 2*time.Hour), // substring
		mkListing("iPhone 13 Pro 256 Go", 3*time.Hour), // prefix
		mkListing("iPhone 13", 4*time.Hour),            // exact
	}

	RankByRelevance(listings, "iphone 13", ExpandQueryText("iphone 13"))

	want := []string{
		"iPhone 13",
		"iPhone 13 Pro 256 Go",
		"Coque pour iPhone 13",
		"Support mural TV",
	}
	got := titles(listings)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestRankByRelevance_PrefixBeatsSubstring(t *testing.T) {
	// A prefix match always outranks a mid-title substring match even when
	// the substring match is much newer.
	listings := []*Listing{
		mkListing("Housse vélo d'appartement", 1*time.Minute),
		mkListing("Vélo de course Decathlon", 48*time.Hour),
	}

	RankByRelevance(listings, "vélo", ExpandQueryText("vélo"))

	if listings[0].Title != "Vélo de course Decathlon" {
		t.Errorf("order = %v, want prefix match first", titles(listings))
	}
}

func TestRankByRelevance_TieBreakNewestFirst(t *testing.T) {
	listings := []*Listing{
		mkListing("iPhone 12 64 Go", 72*time.Hour),
		mkListing("iPhone 12 rouge", 1*time.Hour),
		mkListing("iPhone 12 bleu", 24*time.Hour),
	}

	// All three are prefix matches; newest wins.
	RankByRelevance(listings, "iphone 12", ExpandQueryText("iphone 12"))

	want := []string{"iPhone 12 rouge", "iPhone 12 bleu", "iPhone 12 64 Go"}
	got := titles(listings)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestRankByRelevance_ExactViaVariant(t *testing.T) {
	// The stored title matches a case variant of the query, not the raw
	// query, and still ranks exact.
	listings := []*Listing{
		mkListing("PS5 en boîte", 1*time.Hour),
		mkListing("PS5", 48*time.Hour),
	}

	RankByRelevance(listings, "ps5", ExpandQueryText("ps5"))

	if listings[0].Title != "PS5" {
		t.Errorf("order = %v, want exact variant match first", titles(listings))
	}
}

func TestRankByRelevance_EmptyQueryNoop(t *testing.T) {
	listings := []*Listing{
		mkListing("B", 2*time.Hour),
		mkListing("A", 1*time.Hour),
	}

	RankByRelevance(listings, "  ", nil)

	if listings[0].Title != "B" {
		t.Errorf("order changed on empty query: %v", titles(listings))
	}
}

func TestPageSlice(t *testing.T) {
	window := make([]*Listing, 0, 25)
	for i := 0; i < 25; i++ {
		window = append(window, mkListing("item", time.Duration(i)*time.Minute))
	}

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantLen  int
	}{
		{"first page", 1, 10, 10},
		{"middle page", 2, 10, 10},
		{"partial last page", 3, 10, 5},
		{"page past the window", 4, 10, 0},
		{"window smaller than a page", 1, 50, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageSlice(window, tt.page, tt.pageSize)
			if len(got) != tt.wantLen {
				t.Errorf("PageSlice(page=%d, size=%d) len = %d, want %d",
					tt.page, tt.pageSize, len(got), tt.wantLen)
			}
		})
	}
}

func TestPageSlice_PreservesOrder(t *testing.T) {
	window := []*Listing{
		mkListing("un", time.Hour),
		mkListing("deux", time.Hour),
		mkListing("trois", time.Hour),
		mkListing("quatre", time.Hour),
	}

	got := PageSlice(window, 2, 2)
	if len(got) != 2 || got[0].Title != "trois" || got[1].Title != "quatre" {
		t.Errorf("PageSlice(page=2, size=2) = %v, want [trois quatre]", titles(got))
	}
}
