// Package domain contains the core business logic and entities.
// This package has no infrastructure dependencies.
package domain

import (
	"time"
)

// ListingStatus represents the publication state of a listing.
type ListingStatus string

const (
	// ListingStatusActive is the only state the search engine queries.
	ListingStatusActive  ListingStatus = "active"
	ListingStatusSold    ListingStatus = "sold"
	ListingStatusExpired ListingStatus = "expired"
	ListingStatusDraft   ListingStatus = "draft"
)

// SellerType represents the account type of a listing's owner.
type SellerType string

const (
	SellerTypeIndividual   SellerType = "individual"
	SellerTypeProfessional SellerType = "professional"
)

// Seller is the owning-user summary embedded in a listing.
type Seller struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Avatar string     `json:"avatar,omitempty"`
	Type   SellerType `json:"type"`
}

// Listing represents a classified ad.
type Listing struct {
	ID         string `json:"id"`          // Internal UUID
	ExternalID string `json:"external_id"` // ID at the originating feed, if imported
	Source     string `json:"source"`      // "site" for user posts, feed name for imports

	Title       string `json:"title"`
	Description string `json:"description"`
	// Price is an integer amount in the smallest display unit; the engine
	// never does currency arithmetic on it.
	Price    int64    `json:"price"`
	Location string   `json:"location"`
	Images   []string `json:"images,omitempty"`

	CategoryID      int64  `json:"category_id,omitempty"`
	CategoryName    string `json:"category_name"`
	SubcategoryID   int64  `json:"subcategory_id,omitempty"`
	SubcategoryName string `json:"subcategory_name,omitempty"`
	Condition       string `json:"condition"`

	Status ListingStatus `json:"status"`
	Seller Seller        `json:"seller"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the listing is queryable.
func (l *Listing) IsActive() bool {
	return l.Status == ListingStatusActive
}

// Category is a node in the marketplace taxonomy. Subcategories are
// categories with a non-nil ParentID.
type Category struct {
	ID       int64  `json:"id"`
	ParentID *int64 `json:"parent_id,omitempty"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
}

// IsSubcategory reports whether the category has a parent.
func (c *Category) IsSubcategory() bool {
	return c.ParentID != nil
}

// CategoryActivity holds listing creation counts for one category over two
// adjacent windows, used for category trend classification.
type CategoryActivity struct {
	CategoryID   int64
	CategoryName string
	Recent       int64 // listings created in the last window
	Previous     int64 // listings created in the window before that
}
