package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/query"
	appErr "github.com/trackr/api/pkg/errors"
	"gorm.io/gorm"
)

type ProjectFilter struct {
	Status *models.Status
}

// StatusCounts is the number of projects per status.
type StatusCounts map[models.Status]int64

// ProjectBudget is one project's creation time and the sum of its resource costs.
type ProjectBudget struct {
	ProjectID   uuid.UUID
	CreatedDate time.Time
	Budget      int64
}

type ProjectRepository interface {
	BaseRepository[models.Project]
	GetDetailed(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Paginate(ctx context.Context, p query.Params, f ProjectFilter) (query.Page[models.Project], error)
	CountByStatus(ctx context.Context) (StatusCounts, error)
	BudgetsCreatedBetween(ctx context.Context, from, to time.Time) ([]ProjectBudget, error)
	DeleteWithResources(ctx context.Context, id uuid.UUID) error
}

type projectRepository struct {
	BaseRepository[models.Project]
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{BaseRepository: NewBaseRepository[models.Project](db, "project"), db: db}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("CreatedUser").
		Preload("UpdatedUser").
		Preload("Customer").
		Preload("Resources", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
}

func (r *projectRepository) GetDetailed(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var p models.Project
	if err := r.db.WithContext(ctx).Scopes(withRelations).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErr.Newf(appErr.CodeNotFound, "project %s not found", id).WithMeta("id", id)
		}
		return nil, translate(err, "get project failed")
	}
	return &p, nil
}

func (r *projectRepository) Paginate(ctx context.Context, p query.Params, f ProjectFilter) (query.Page[models.Project], error) {
	base := r.db.Scopes(query.Search("name", p.Search))
	if f.Status != nil {
		base = base.Where("status = ?", *f.Status)
	}
	return query.Run[models.Project](ctx, base, p, query.OrderBy("created_date", p.Sort), withRelations)
}

func (r *projectRepository) CountByStatus(ctx context.Context) (StatusCounts, error) {
	var rows []struct {
		Status models.Status
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "count projects by status failed")
	}
	out := StatusCounts{}
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *projectRepository) BudgetsCreatedBetween(ctx context.Context, from, to time.Time) ([]ProjectBudget, error) {
	out := []ProjectBudget{}
	err := r.db.WithContext(ctx).Table("projects AS p").
		Select("p.id AS project_id, p.created_date, COALESCE(SUM(r.total_cost), 0) AS budget").
		Joins("LEFT JOIN resources r ON r.project_id = p.id").
		Where("p.created_date >= ? AND p.created_date < ?", from, to).
		Group("p.id, p.created_date").
		Order("p.created_date ASC").
		Scan(&out).Error
	if err != nil {
		return nil, translate(err, "load project budgets failed")
	}
	return out, nil
}

// DeleteWithResources removes a project and its resources in one transaction.
func (r *projectRepository) DeleteWithResources(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Resource{}).Error; err != nil {
			return translate(err, "delete project resources failed")
		}
		res := tx.Delete(&models.Project{}, "id = ?", id)
		if res.Error != nil {
			return translate(res.Error, "delete project failed")
		}
		if res.RowsAffected == 0 {
			return appErr.Newf(appErr.CodeNotFound, "project %s not found", id).WithMeta("id", id)
		}
		return nil
	})
}
