package partner

import (
	"time"

	"marketplace-search-service/internal/domain"
)

// Response represents the partner feed's JSON payload.
type Response struct {
	Listings []ListingItem `json:"listings"`
	Total    int           `json:"total"`
}

// ListingItem is a single classified ad in the partner feed.
type ListingItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	City        string   `json:"city"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Condition   string   `json:"condition"`
	Images      []string `json:"images"`
	Seller      Seller   `json:"seller"`
	PostedAt    string   `json:"posted_at"`
}

// Seller holds the partner's seller summary.
type Seller struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Avatar       string `json:"avatar"`
	Professional bool   `json:"professional"`
}

// ToDomain converts a feed item to a domain.Listing. Category, subcategory,
// and condition strings come through the normalizer so imported listings
// carry canonical labels regardless of the partner's spelling.
func (i *ListingItem) ToDomain(feedName string) *domain.Listing {
	postedAt, err := time.Parse(time.RFC3339, i.PostedAt)
	if err != nil {
		postedAt = time.Now().UTC()
	}

	sellerType := domain.SellerTypeIndividual
	if i.Seller.Professional {
		sellerType = domain.SellerTypeProfessional
	}

	return &domain.Listing{
		ExternalID:      i.ID,
		Source:          feedName,
		Title:           i.Title,
		Description:     i.Description,
		Price:           i.Price,
		Location:        i.City,
		Images:          i.Images,
		CategoryName:    domain.Normalize(domain.KindCategory, i.Category).Canonical,
		SubcategoryName: domain.Normalize(domain.KindSubcategory, i.Subcategory).Canonical,
		Condition:       domain.Normalize(domain.KindCondition, i.Condition).Canonical,
		Status:          domain.ListingStatusActive,
		Seller: domain.Seller{
			ID:     i.Seller.ID,
			Name:   i.Seller.Name,
			Avatar: i.Seller.Avatar,
			Type:   sellerType,
		},
		CreatedAt: postedAt,
	}
}
