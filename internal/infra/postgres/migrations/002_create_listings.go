package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createListingsTable creates the listings table with the indexes the search
// predicates lean on: status, category/subcategory ids, price, created_at,
// seller_type, plus the source+external_id unique key for feed imports.
func createListingsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_create_listings",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS listings (
					id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					source           VARCHAR(50)  NOT NULL DEFAULT 'site',
					external_id      VARCHAR(100) NOT NULL DEFAULT '',
					title            VARCHAR(300) NOT NULL,
					description      TEXT         NOT NULL DEFAULT '',
					price            BIGINT       NOT NULL DEFAULT 0,
					location         VARCHAR(200) NOT NULL DEFAULT '',
					images           TEXT[],
					category_id      BIGINT REFERENCES categories(id),
					category_name    VARCHAR(100) NOT NULL DEFAULT '',
					subcategory_id   BIGINT REFERENCES categories(id),
					subcategory_name VARCHAR(100) NOT NULL DEFAULT '',
					condition        VARCHAR(50)  NOT NULL DEFAULT '',
					status           VARCHAR(20)  NOT NULL DEFAULT 'active',
					seller_id        VARCHAR(100) NOT NULL DEFAULT '',
					seller_name      VARCHAR(200) NOT NULL DEFAULT '',
					seller_avatar    VARCHAR(500) NOT NULL DEFAULT '',
					seller_type      VARCHAR(20)  NOT NULL DEFAULT 'individual',
					created_at       TIMESTAMPTZ  NOT NULL DEFAULT now(),
					updated_at       TIMESTAMPTZ  NOT NULL DEFAULT now()
				)
			`).Error; err != nil {
				return err
			}

			indexes := []string{
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_source_external ON listings (source, external_id) WHERE external_id <> ''`,
				`CREATE INDEX IF NOT EXISTS idx_listings_status ON listings (status)`,
				`CREATE INDEX IF NOT EXISTS idx_listings_category_id ON listings (category_id)`,
				`CREATE INDEX IF NOT EXISTS idx_listings_subcategory_id ON listings (subcategory_id)`,
				`CREATE INDEX IF NOT EXISTS idx_listings_price ON listings (price)`,
				`CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings (created_at)`,
				`CREATE INDEX IF NOT EXISTS idx_listings_seller_type ON listings (seller_type)`,
			}
			for _, stmt := range indexes {
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`DROP TABLE IF EXISTS listings`).Error
		},
	}
}
