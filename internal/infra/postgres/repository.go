package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketplace-search-service/internal/domain"
)

// Repository implements domain.ListingRepository and domain.CategoryLookup
// using PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Find returns listings matching the filter, ordered and paginated.
func (r *Repository) Find(ctx context.Context, filter domain.ListingFilter, sort domain.SortMode, limit, offset int) ([]*domain.Listing, error) {
	var models []ListingModel

	query := r.buildFilterQuery(filter).WithContext(ctx).
		Limit(limit).
		Offset(offset)
	query = applyOrdering(query, sort)

	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("finding listings: %w", err)
	}

	listings := make([]*domain.Listing, len(models))
	for i := range models {
		listings[i] = models[i].ToDomain()
	}

	return listings, nil
}

// Count returns the number of listings matching the filter.
func (r *Repository) Count(ctx context.Context, filter domain.ListingFilter) (int64, error) {
	var count int64
	if err := r.buildFilterQuery(filter).WithContext(ctx).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting listings: %w", err)
	}

	return count, nil
}

// BulkUpsert creates or updates imported listings keyed by source + external ID.
func (r *Repository) BulkUpsert(ctx context.Context, listings []*domain.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]*ListingModel, len(listings))
	for i, l := range listings {
		models[i] = FromDomain(l)
		models[i].UpdatedAt = now
	}

	// The conflict target is the partial unique index on (source,
	// external_id); its predicate must be restated for Postgres to match it.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "source"}, {Name: "external_id"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "external_id <> ''"}}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "price", "location", "images",
			"category_id", "category_name", "subcategory_id", "subcategory_name",
			"condition", "status",
			"seller_id", "seller_name", "seller_avatar", "seller_type",
			"updated_at",
		}),
	}).CreateInBatches(models, 100).Error
	if err != nil {
		return fmt.Errorf("bulk upserting listings: %w", err)
	}

	for i, m := range models {
		listings[i].ID = m.ID
		listings[i].CreatedAt = m.CreatedAt
		listings[i].UpdatedAt = m.UpdatedAt
	}

	return nil
}

// CategoryActivity returns per-category listing creation counts for the last
// window versus the equally-sized window before it. Only active listings in
// categorized listings count.
func (r *Repository) CategoryActivity(ctx context.Context, window time.Duration) ([]domain.CategoryActivity, error) {
	now := time.Now().UTC()
	recentCutoff := now.Add(-window)
	floor := now.Add(-2 * window)

	var rows []struct {
		CategoryID   int64
		CategoryName string
		Recent       int64
		Previous     int64
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT category_id,
		       category_name,
		       COUNT(*) FILTER (WHERE created_at >= ?) AS recent,
		       COUNT(*) FILTER (WHERE created_at < ?)  AS previous
		FROM listings
		WHERE status = ?
		  AND category_id IS NOT NULL
		  AND created_at >= ?
		GROUP BY category_id, category_name
		ORDER BY recent DESC`,
		recentCutoff, recentCutoff, string(domain.ListingStatusActive), floor,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregating category activity: %w", err)
	}

	activity := make([]domain.CategoryActivity, len(rows))
	for i, row := range rows {
		activity[i] = domain.CategoryActivity{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Recent:       row.Recent,
			Previous:     row.Previous,
		}
	}

	return activity, nil
}

// ResolveCategory finds a top-level category whose slug or name matches any
// candidate, case-insensitively. Returns nil when nothing matches.
func (r *Repository) ResolveCategory(ctx context.Context, candidates []string) (*domain.Category, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	var model CategoryModel
	err := r.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Where("LOWER(slug) IN ? OR LOWER(name) IN ?", candidates, candidates).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("resolving category: %w", err)
	}

	return model.ToDomain(), nil
}

// ResolveSubcategory finds a subcategory matching any candidate, optionally
// restricted to children of parentID.
func (r *Repository) ResolveSubcategory(ctx context.Context, parentID *int64, candidates []string) (*domain.Category, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).
		Where("parent_id IS NOT NULL").
		Where("LOWER(slug) IN ? OR LOWER(name) IN ?", candidates, candidates)
	if parentID != nil {
		query = query.Where("parent_id = ?", *parentID)
	}

	var model CategoryModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("resolving subcategory: %w", err)
	}

	return model.ToDomain(), nil
}

// buildFilterQuery translates a ListingFilter into a WHERE clause. All
// parameters are bound through GORM's parameterized queries. Identifier
// filters are preferred (indexed); name-variant membership is the fallback
// when normalization could not resolve an ID.
func (r *Repository) buildFilterQuery(f domain.ListingFilter) *gorm.DB {
	query := r.db.Model(&ListingModel{})

	status := f.Status
	if status == "" {
		status = domain.ListingStatusActive
	}
	query = query.Where("status = ?", string(status))

	switch {
	case f.CategoryID != nil:
		query = query.Where("category_id = ?", *f.CategoryID)
	case len(f.CategoryNames) > 0:
		query = query.Where("LOWER(category_name) IN ?", f.CategoryNames)
	}

	switch {
	case f.SubcategoryID != nil:
		query = query.Where("subcategory_id = ?", *f.SubcategoryID)
	case len(f.SubcategoryNames) > 0:
		query = query.Where("LOWER(subcategory_name) IN ?", f.SubcategoryNames)
	}

	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}

	if f.Location != "" {
		query = query.Where("location ILIKE ?", "%"+f.Location+"%")
	}

	// Free-text variants: OR of title/description substring matches. The
	// case-variant expansion upstream stands in for a case-insensitive
	// text index.
	if len(f.TextVariants) > 0 {
		var text *gorm.DB
		for _, v := range f.TextVariants {
			pattern := "%" + v + "%"
			cond := r.db.Where("title LIKE ?", pattern).
				Or("description LIKE ?", pattern)
			if text == nil {
				text = cond
			} else {
				text = text.Or(cond)
			}
		}
		query = query.Where(text)
	}

	if len(f.ConditionNames) > 0 {
		query = query.Where("LOWER(condition) IN ?", f.ConditionNames)
	}

	if f.SellerType != "" {
		query = query.Where("seller_type = ?", f.SellerType)
	}

	return query
}

// applyOrdering adds the ORDER BY clause. Price sorts break ties newest-first
// so pagination stays deterministic for equal prices.
func applyOrdering(query *gorm.DB, sort domain.SortMode) *gorm.DB {
	switch sort {
	case domain.SortOldest:
		return query.Order("created_at ASC")
	case domain.SortPriceAsc:
		return query.Order("price ASC, created_at DESC")
	case domain.SortPriceDesc:
		return query.Order("price DESC, created_at DESC")
	default:
		return query.Order("created_at DESC")
	}
}
