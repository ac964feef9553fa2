package repository

import (
	"context"
	"errors"

	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/query"
	appErr "github.com/trackr/api/pkg/errors"
	"gorm.io/gorm"
)

type UserFilter struct {
	Role *models.Role
}

// RoleCounts is the number of users per role. Users without a role count as User.
type RoleCounts map[models.Role]int64

type UserRepository interface {
	BaseRepository[models.User]
	GetByEmail(ctx context.Context, email string, dest *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Paginate(ctx context.Context, p query.Params, f UserFilter) (query.Page[models.User], error)
	CountByRole(ctx context.Context) (RoleCounts, error)
}

type userRepository struct {
	BaseRepository[models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository[models.User](db, "user"), db: db}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "user not found")
		}
		return translate(err, "get user by email failed")
	}
	return nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, translate(err, "check user email failed")
	}
	return n > 0, nil
}

func (r *userRepository) Paginate(ctx context.Context, p query.Params, f UserFilter) (query.Page[models.User], error) {
	base := r.db.Scopes(query.Search("COALESCE(name, '')", p.Search))
	if f.Role != nil {
		if *f.Role == models.RoleUser {
			base = base.Where("role_id = ? OR role_id IS NULL", *f.Role)
		} else {
			base = base.Where("role_id = ?", *f.Role)
		}
	}
	return query.Run[models.User](ctx, base, p, query.OrderBy("created_at", p.Sort))
}

func (r *userRepository) CountByRole(ctx context.Context) (RoleCounts, error) {
	var rows []struct {
		Role  models.Role
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("COALESCE(role_id, 0) AS role, COUNT(*) AS count").
		Group("COALESCE(role_id, 0)").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "count users by role failed")
	}
	out := RoleCounts{}
	for _, row := range rows {
		out[row.Role] += row.Count
	}
	return out, nil
}
