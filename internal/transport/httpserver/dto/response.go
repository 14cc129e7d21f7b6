package dto

import (
	"time"

	"marketplace-search-service/internal/app/service"
	"marketplace-search-service/internal/domain"
)

// SellerResponse is the owning-user summary embedded in a listing response.
type SellerResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Type   string `json:"type"`
}

// ListingResponse represents a single listing in the response.
type ListingResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Location    string   `json:"location"`
	Images      []string `json:"images,omitempty"`

	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Condition   string `json:"condition"`

	Seller SellerResponse `json:"seller"`

	CreatedAt string `json:"created_at"`
}

// FromDomainListing converts domain.Listing to ListingResponse.
func FromDomainListing(l *domain.Listing) ListingResponse {
	return ListingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Location:    l.Location,
		Images:      l.Images,
		Category:    l.CategoryName,
		Subcategory: l.SubcategoryName,
		Condition:   l.Condition,
		Seller: SellerResponse{
			ID:     l.Seller.ID,
			Name:   l.Seller.Name,
			Avatar: l.Seller.Avatar,
			Type:   string(l.Seller.Type),
		},
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
}

// SearchResponse represents the search results response.
type SearchResponse struct {
	Listings   []ListingResponse `json:"listings"`
	Pagination PaginationMeta    `json:"pagination"`
}

// PaginationMeta holds pagination metadata.
type PaginationMeta struct {
	Total           int64 `json:"total"`
	Page            int   `json:"page"`
	PageSize        int   `json:"page_size"`
	TotalPages      int   `json:"total_pages"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
}

// FromSearchResult converts domain.SearchResult to SearchResponse.
func FromSearchResult(result *domain.SearchResult) SearchResponse {
	listings := make([]ListingResponse, len(result.Listings))
	for i, l := range result.Listings {
		listings[i] = FromDomainListing(l)
	}

	return SearchResponse{
		Listings: listings,
		Pagination: PaginationMeta{
			Total:           result.Total,
			Page:            result.Page,
			PageSize:        result.PageSize,
			TotalPages:      result.TotalPages,
			HasNextPage:     result.HasNextPage,
			HasPreviousPage: result.HasPreviousPage,
		},
	}
}

// SuggestionsResponse represents the autocomplete response.
type SuggestionsResponse struct {
	Suggestions []domain.Suggestion `json:"suggestions"`
}

// TrendingResponse represents a trending searches/categories response.
type TrendingResponse struct {
	Trends []domain.TrendSnapshot `json:"trends"`
}

// ImportResultResponse represents the response for one feed import.
type ImportResultResponse struct {
	Feed     string `json:"feed"`
	Count    int    `json:"count"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// ImportResponse represents the response for an import-all operation.
type ImportResponse struct {
	Results []ImportResultResponse `json:"results"`
	Summary ImportSummary          `json:"summary"`
}

// ImportSummary holds the rollup of an import operation.
type ImportSummary struct {
	TotalImported int `json:"total_imported"`
	FeedsOK       int `json:"feeds_ok"`
	FeedsFailed   int `json:"feeds_failed"`
}

// FromImportResults converts service.ImportResult slice to ImportResponse.
func FromImportResults(results []service.ImportResult) ImportResponse {
	resp := ImportResponse{
		Results: make([]ImportResultResponse, len(results)),
	}

	for i, r := range results {
		errMsg := ""
		if r.Error != nil {
			errMsg = r.Error.Error()
			resp.Summary.FeedsFailed++
		} else {
			resp.Summary.TotalImported += r.Count
			resp.Summary.FeedsOK++
		}

		resp.Results[i] = ImportResultResponse{
			Feed:     r.Feed,
			Count:    r.Count,
			Duration: r.Duration.String(),
			Error:    errMsg,
		}
	}

	return resp
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
