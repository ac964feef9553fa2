package repository

import (
	"context"

	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/query"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	BaseRepository[models.Customer]
	Paginate(ctx context.Context, p query.Params) (query.Page[models.Customer], error)
}

type customerRepository struct {
	BaseRepository[models.Customer]
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{BaseRepository: NewBaseRepository[models.Customer](db, "customer"), db: db}
}

func (r *customerRepository) Paginate(ctx context.Context, p query.Params) (query.Page[models.Customer], error) {
	base := r.db.Scopes(query.Search("name", p.Search))
	return query.Run[models.Customer](ctx, base, p, query.OrderBy("created_at", p.Sort))
}
