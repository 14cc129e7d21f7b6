package domain

import "strings"

// SortMode represents the result ordering for a search.
type SortMode string

const (
	SortNewest    SortMode = "newest" // default
	SortOldest    SortMode = "oldest"
	SortPriceAsc  SortMode = "price_asc"  // ties broken newest-first
	SortPriceDesc SortMode = "price_desc" // ties broken newest-first
)

// Page size heuristics: the more expensive the predicate, the smaller the
// page. Applied only when the caller did not ask for an explicit size.
const (
	DefaultPageSize   = 20
	TextPageSize      = 15
	PriceOnlyPageSize = 18
	MaxPageSize       = 100

	// RelevanceWindow caps the number of recent rows fetched for the
	// in-memory relevance re-sort of free-text searches. Ranking only this
	// window is a deliberate approximation: bounded latency over an
	// exhaustive top-K sort of the whole table.
	RelevanceWindow = 100
)

// SearchParams holds the loosely-typed search input. Optional string fields
// are free-form; the engine normalizes them and never rejects unknown
// spellings. Caller contract: MinPrice <= MaxPrice when both are set.
type SearchParams struct {
	Query       string
	Category    string
	Subcategory string
	Location    string
	MinPrice    *int64
	MaxPrice    *int64
	Condition   string
	SellerType  string

	Sort     SortMode
	Page     int // 1-based
	PageSize int // 0 means "pick a heuristic size"
}

// Validate corrects out-of-bounds values in place. This is bound correction,
// not validation: malformed optional fields never cause an error.
func (p *SearchParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = p.heuristicPageSize()
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.Sort == "" {
		p.Sort = SortNewest
	}
}

// heuristicPageSize trades result-set size against predicate cost.
func (p *SearchParams) heuristicPageSize() int {
	if p.HasQuery() {
		return TextPageSize
	}
	if p.priceRangeOnly() {
		return PriceOnlyPageSize
	}
	return DefaultPageSize
}

// priceRangeOnly reports whether a price bound is the only filter set.
func (p *SearchParams) priceRangeOnly() bool {
	if p.MinPrice == nil && p.MaxPrice == nil {
		return false
	}
	return !p.HasQuery() && p.Category == "" && p.Subcategory == "" &&
		p.Location == "" && p.Condition == "" && p.SellerType == ""
}

// HasQuery reports whether the params carry a free-text component. Free text
// disables caching and forces the in-memory relevance re-sort.
// Whitespace-only input does not count; it expands to no text variants and
// must take the plain sorted path.
func (p *SearchParams) HasQuery() bool {
	return strings.TrimSpace(p.Query) != ""
}

// Offset calculates the database offset for pagination.
func (p *SearchParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ListingFilter is the fully-resolved predicate handed to the repository.
// Identifier fields win over the name-variant fallbacks: when CategoryID is
// set, CategoryNames is ignored (and likewise for subcategories).
type ListingFilter struct {
	Status ListingStatus

	CategoryID       *int64
	CategoryNames    []string // lowercase variant set, used only when CategoryID is nil
	SubcategoryID    *int64
	SubcategoryNames []string

	MinPrice *int64
	MaxPrice *int64

	Location string // substring match

	// TextVariants is the expanded free-text variant set; the repository
	// builds an OR of title/description substring matches over it.
	TextVariants []string

	ConditionNames []string // lowercase variant set
	SellerType     string
}

// SearchResult holds one page of listings plus pagination metadata.
type SearchResult struct {
	Listings        []*Listing `json:"listings"`
	Total           int64      `json:"total"`
	Page            int        `json:"page"`
	PageSize        int        `json:"page_size"`
	TotalPages      int        `json:"total_pages"`
	HasNextPage     bool       `json:"has_next_page"`
	HasPreviousPage bool       `json:"has_previous_page"`
}

// NewSearchResult builds a SearchResult with calculated pagination.
// Invariants: TotalPages == ceil(Total/PageSize), len(Listings) <= PageSize.
func NewSearchResult(listings []*Listing, total int64, params SearchParams) *SearchResult {
	totalPages := int(total) / params.PageSize
	if int(total)%params.PageSize > 0 {
		totalPages++
	}

	return &SearchResult{
		Listings:        listings,
		Total:           total,
		Page:            params.Page,
		PageSize:        params.PageSize,
		TotalPages:      totalPages,
		HasNextPage:     params.Page < totalPages,
		HasPreviousPage: params.Page > 1,
	}
}
