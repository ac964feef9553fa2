package repository

import (
	"github.com/trackr/api/internal/models"
	"gorm.io/gorm"
)

// registerModels returns all models that need migration
func registerModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Customer{},
		&models.Project{},
		&models.Resource{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := enableUUIDExtension(db); err != nil {
		return err
	}
	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}
	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addProjectSearchIndex,
		addResourceCascade,
	}
	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}
	return nil
}

// enableUUIDExtension ensures gen_random_uuid() is available
func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error
}

func addProjectSearchIndex(db *gorm.DB) error {
	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_projects_lower_name ON projects (LOWER(name))`).Error
}

// addResourceCascade makes sure databases created before the constraint was
// declared on the model also cascade resource deletes.
func addResourceCascade(db *gorm.DB) error {
	return db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint
				WHERE conrelid = 'resources'::regclass AND contype = 'f' AND confdeltype = 'c'
			) THEN
				ALTER TABLE resources
					ADD CONSTRAINT fk_resources_project_cascade
					FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE;
			END IF;
		END $$;
	`).Error
}
