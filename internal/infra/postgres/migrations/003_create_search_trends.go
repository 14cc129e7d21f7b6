package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createSearchTrendsTable creates the rolling counter table for tracked
// search queries. The primary key on query is what makes the single-statement
// ON CONFLICT upsert in TrendRepository.Increment atomic per key.
func createSearchTrendsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "003_create_search_trends",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS search_trends (
					query            VARCHAR(200) PRIMARY KEY,
					total_count      BIGINT NOT NULL DEFAULT 0,
					daily_count      BIGINT NOT NULL DEFAULT 0,
					yesterday_count  BIGINT NOT NULL DEFAULT 0,
					weekly_count     BIGINT NOT NULL DEFAULT 0,
					last_searched_at TIMESTAMPTZ NOT NULL,
					created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
				)
			`).Error; err != nil {
				return err
			}

			return tx.Exec(`
				CREATE INDEX IF NOT EXISTS idx_search_trends_last_searched_at
				ON search_trends (last_searched_at)
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`DROP TABLE IF EXISTS search_trends`).Error
		},
	}
}
