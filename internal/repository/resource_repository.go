package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/trackr/api/internal/models"
	"gorm.io/gorm"
)

type ResourceRepository interface {
	BaseRepository[models.Resource]
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Resource, error)
}

type resourceRepository struct {
	BaseRepository[models.Resource]
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{BaseRepository: NewBaseRepository[models.Resource](db, "resource"), db: db}
}

func (r *resourceRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Resource, error) {
	out := []models.Resource{}
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "list resources by project failed")
	}
	return out, nil
}
