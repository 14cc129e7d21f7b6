// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import "marketplace-search-service/internal/domain"

// SearchRequest represents the query parameters for searching listings.
// Category, subcategory, and condition are free-form on purpose: unknown
// spellings are normalized downstream, never rejected.
type SearchRequest struct {
	Query       string `query:"q" validate:"max=200"`
	Category    string `query:"category" validate:"max=100"`
	Subcategory string `query:"subcategory" validate:"max=100"`
	Location    string `query:"location" validate:"max=200"`
	MinPrice    *int64 `query:"min_price" validate:"omitempty,min=0"`
	MaxPrice    *int64 `query:"max_price" validate:"omitempty,min=0"`
	Condition   string `query:"condition" validate:"max=50"`
	SellerType  string `query:"seller_type" validate:"omitempty,oneof=individual professional"`
	Sort        string `query:"sort" validate:"omitempty,oneof=newest oldest price_asc price_desc"`
	Page        int    `query:"page" validate:"omitempty,min=1"`
	PageSize    int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// ToSearchParams converts SearchRequest to domain.SearchParams. PageSize
// stays zero when unset so the engine can pick its heuristic size.
func (r *SearchRequest) ToSearchParams() domain.SearchParams {
	params := domain.SearchParams{
		Query:       r.Query,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Location:    r.Location,
		MinPrice:    r.MinPrice,
		MaxPrice:    r.MaxPrice,
		Condition:   r.Condition,
		SellerType:  r.SellerType,
		Sort:        domain.SortMode(r.Sort),
		Page:        1,
		PageSize:    r.PageSize,
	}

	if r.Page > 0 {
		params.Page = r.Page
	}

	return params
}

// SuggestRequest represents the query parameters for autocomplete.
type SuggestRequest struct {
	Query string `query:"q" validate:"required,max=100"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=20"`
}

// TrendingRequest represents the query parameters for trending reads.
type TrendingRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=50"`
}

// ImportRequest represents the request body for a manual feed import.
type ImportRequest struct {
	Feed string `json:"feed" validate:"omitempty,max=50"`
}
