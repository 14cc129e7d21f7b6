package postgres

import (
	"time"

	"github.com/lib/pq"

	"marketplace-search-service/internal/domain"
)

// ListingModel is the GORM model for the listings table.
type ListingModel struct {
	ID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Source     string `gorm:"type:varchar(50);not null;default:'site';index:idx_source_external,unique"`
	ExternalID string `gorm:"type:varchar(100);not null;default:'';index:idx_source_external,unique"`

	Title       string         `gorm:"type:varchar(300);not null"`
	Description string         `gorm:"type:text;not null;default:''"`
	Price       int64          `gorm:"not null;default:0;index"`
	Location    string         `gorm:"type:varchar(200);not null;default:''"`
	Images      pq.StringArray `gorm:"type:text[]"`

	CategoryID      *int64 `gorm:"index"`
	CategoryName    string `gorm:"type:varchar(100);not null;default:''"`
	SubcategoryID   *int64 `gorm:"index"`
	SubcategoryName string `gorm:"type:varchar(100);not null;default:''"`
	Condition       string `gorm:"type:varchar(50);not null;default:''"`

	Status string `gorm:"type:varchar(20);not null;default:'active';index"`

	SellerID     string `gorm:"type:varchar(100);not null;default:''"`
	SellerName   string `gorm:"type:varchar(200);not null;default:''"`
	SellerAvatar string `gorm:"type:varchar(500);not null;default:''"`
	SellerType   string `gorm:"type:varchar(20);not null;default:'individual';index"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for ListingModel.
func (ListingModel) TableName() string {
	return "listings"
}

// ToDomain converts ListingModel to domain.Listing.
func (m *ListingModel) ToDomain() *domain.Listing {
	l := &domain.Listing{
		ID:              m.ID,
		ExternalID:      m.ExternalID,
		Source:          m.Source,
		Title:           m.Title,
		Description:     m.Description,
		Price:           m.Price,
		Location:        m.Location,
		Images:          m.Images,
		CategoryName:    m.CategoryName,
		SubcategoryName: m.SubcategoryName,
		Condition:       m.Condition,
		Status:          domain.ListingStatus(m.Status),
		Seller: domain.Seller{
			ID:     m.SellerID,
			Name:   m.SellerName,
			Avatar: m.SellerAvatar,
			Type:   domain.SellerType(m.SellerType),
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.CategoryID != nil {
		l.CategoryID = *m.CategoryID
	}
	if m.SubcategoryID != nil {
		l.SubcategoryID = *m.SubcategoryID
	}
	return l
}

// FromDomain creates a ListingModel from domain.Listing.
func FromDomain(l *domain.Listing) *ListingModel {
	m := &ListingModel{
		ID:              l.ID,
		Source:          l.Source,
		ExternalID:      l.ExternalID,
		Title:           l.Title,
		Description:     l.Description,
		Price:           l.Price,
		Location:        l.Location,
		Images:          l.Images,
		CategoryName:    l.CategoryName,
		SubcategoryName: l.SubcategoryName,
		Condition:       l.Condition,
		Status:          string(l.Status),
		SellerID:        l.Seller.ID,
		SellerName:      l.Seller.Name,
		SellerAvatar:    l.Seller.Avatar,
		SellerType:      string(l.Seller.Type),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
	if l.CategoryID != 0 {
		id := l.CategoryID
		m.CategoryID = &id
	}
	if l.SubcategoryID != 0 {
		id := l.SubcategoryID
		m.SubcategoryID = &id
	}
	return m
}

// CategoryModel is the GORM model for the categories table.
type CategoryModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	ParentID *int64 `gorm:"index"`
	Slug     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(100);not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts CategoryModel to domain.Category.
func (m *CategoryModel) ToDomain() *domain.Category {
	return &domain.Category{
		ID:       m.ID,
		ParentID: m.ParentID,
		Slug:     m.Slug,
		Name:     m.Name,
	}
}

// SearchTrendModel is the GORM model for the search_trends table.
// Counter columns are only ever written through atomic SQL increments; see
// TrendRepository.Increment.
type SearchTrendModel struct {
	Query          string    `gorm:"type:varchar(200);primaryKey"`
	TotalCount     int64     `gorm:"not null;default:0"`
	DailyCount     int64     `gorm:"not null;default:0"`
	YesterdayCount int64     `gorm:"not null;default:0"`
	WeeklyCount    int64     `gorm:"not null;default:0"`
	LastSearchedAt time.Time `gorm:"not null;index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for SearchTrendModel.
func (SearchTrendModel) TableName() string {
	return "search_trends"
}

// ToDomain converts SearchTrendModel to domain.SearchTrend.
func (m *SearchTrendModel) ToDomain() *domain.SearchTrend {
	return &domain.SearchTrend{
		Query:          m.Query,
		TotalCount:     m.TotalCount,
		DailyCount:     m.DailyCount,
		YesterdayCount: m.YesterdayCount,
		WeeklyCount:    m.WeeklyCount,
		LastSearchedAt: m.LastSearchedAt,
		CreatedAt:      m.CreatedAt,
	}
}
