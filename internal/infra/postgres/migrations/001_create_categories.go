package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createCategoriesTable creates the taxonomy table and seeds the marketplace
// categories. The seeded slugs and names line up with the normalizer's
// synonym tables so slug-or-name resolution hits the indexed path.
func createCategoriesTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_categories",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS categories (
					id          BIGSERIAL PRIMARY KEY,
					parent_id   BIGINT REFERENCES categories(id),
					slug        VARCHAR(100) NOT NULL UNIQUE,
					name        VARCHAR(100) NOT NULL,
					created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
				)
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				CREATE INDEX IF NOT EXISTS idx_categories_parent_id
				ON categories (parent_id)
			`).Error; err != nil {
				return err
			}

			if err := tx.Exec(`
				INSERT INTO categories (slug, name, parent_id) VALUES
					('electronique',   'Électronique',    NULL),
					('vehicules',      'Véhicules',       NULL),
					('immobilier',     'Immobilier',      NULL),
					('mode',           'Mode',            NULL),
					('maison-jardin',  'Maison & Jardin', NULL),
					('sports-loisirs', 'Sports & Loisirs',NULL),
					('emploi',         'Emploi',          NULL),
					('services',       'Services',        NULL),
					('animaux',        'Animaux',         NULL)
				ON CONFLICT (slug) DO NOTHING
			`).Error; err != nil {
				return err
			}

			return tx.Exec(`
				INSERT INTO categories (slug, name, parent_id) VALUES
					('telephones',      'Téléphones',            (SELECT id FROM categories WHERE slug = 'electronique')),
					('ordinateurs',     'Ordinateurs',           (SELECT id FROM categories WHERE slug = 'electronique')),
					('consoles-jeux',   'Consoles & Jeux vidéo', (SELECT id FROM categories WHERE slug = 'electronique')),
					('photo-audio',     'Photo & Audio',         (SELECT id FROM categories WHERE slug = 'electronique')),
					('voitures',        'Voitures',              (SELECT id FROM categories WHERE slug = 'vehicules')),
					('motos',           'Motos',                 (SELECT id FROM categories WHERE slug = 'vehicules')),
					('appartements',    'Appartements',          (SELECT id FROM categories WHERE slug = 'immobilier')),
					('maisons',         'Maisons',               (SELECT id FROM categories WHERE slug = 'immobilier')),
					('meubles',         'Meubles',               (SELECT id FROM categories WHERE slug = 'maison-jardin')),
					('electromenager',  'Électroménager',        (SELECT id FROM categories WHERE slug = 'maison-jardin'))
				ON CONFLICT (slug) DO NOTHING
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`DROP TABLE IF EXISTS categories`).Error
		},
	}
}
