package domain

import (
	"sort"
	"strings"
)

// Relevance ranks, highest priority first. Within one rank, ties break
// newest-first.
const (
	rankExact = iota
	rankPrefix
	rankContains
	rankRecency
)

// RankByRelevance sorts the fetched window in place by textual match
// quality against the query: exact > prefix > substring > recency. The
// variants are the expanded forms of the query; a title equal to any of
// them counts as an exact match. The sort is stable with an explicit
// newest-first tie break so the ordering is deterministic.
func RankByRelevance(listings []*Listing, query string, variants []string) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return
	}

	ranks := make(map[*Listing]int, len(listings))
	for _, l := range listings {
		ranks[l] = relevanceRank(l.Title, q, variants)
	}

	sort.SliceStable(listings, func(i, j int) bool {
		ri, rj := ranks[listings[i]], ranks[listings[j]]
		if ri != rj {
			return ri < rj
		}
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
}

// relevanceRank classifies one title against the query.
func relevanceRank(title, lowerQuery string, variants []string) int {
	lowerTitle := strings.ToLower(strings.TrimSpace(title))

	if lowerTitle == lowerQuery {
		return rankExact
	}
	for _, v := range variants {
		if title == v || lowerTitle == strings.ToLower(v) {
			return rankExact
		}
	}
	if strings.HasPrefix(lowerTitle, lowerQuery) {
		return rankPrefix
	}
	if strings.Contains(lowerTitle, lowerQuery) {
		return rankContains
	}
	return rankRecency
}

// PageSlice cuts the requested 1-based page out of an in-memory ranked
// window. Pages past the end of the window come back empty.
func PageSlice(listings []*Listing, page, pageSize int) []*Listing {
	start := (page - 1) * pageSize
	if start >= len(listings) {
		return []*Listing{}
	}
	end := start + pageSize
	if end > len(listings) {
		end = len(listings)
	}
	return listings[start:end]
}
