package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	appErr "github.com/trackr/api/pkg/errors"
	"gorm.io/gorm"
)

// BaseRepository defines common CRUD operations.
type BaseRepository[T any] interface {
	Create(ctx context.Context, obj *T) error
	GetByID(ctx context.Context, id any, dest *T) error
	Update(ctx context.Context, obj *T) error
	Delete(ctx context.Context, id any) error
	List(ctx context.Context, order string) ([]T, error)
}

type baseRepository[T any] struct {
	db   *gorm.DB
	name string
}

func NewBaseRepository[T any](db *gorm.DB, name string) BaseRepository[T] {
	return &baseRepository[T]{db: db, name: name}
}

func (r *baseRepository[T]) Create(ctx context.Context, obj *T) error {
	if err := r.db.WithContext(ctx).Create(obj).Error; err != nil {
		return translate(err, fmt.Sprintf("create %s failed", r.name))
	}
	return nil
}

func (r *baseRepository[T]) GetByID(ctx context.Context, id any, dest *T) error {
	if err := r.db.WithContext(ctx).First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.Newf(appErr.CodeNotFound, "%s %v not found", r.name, id).WithMeta("id", id)
		}
		return translate(err, fmt.Sprintf("get %s failed", r.name))
	}
	return nil
}

func (r *baseRepository[T]) Update(ctx context.Context, obj *T) error {
	if err := r.db.WithContext(ctx).Save(obj).Error; err != nil {
		return translate(err, fmt.Sprintf("update %s failed", r.name))
	}
	return nil
}

func (r *baseRepository[T]) Delete(ctx context.Context, id any) error {
	var t T
	res := r.db.WithContext(ctx).Delete(&t, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, fmt.Sprintf("delete %s failed", r.name))
	}
	if res.RowsAffected == 0 {
		return appErr.Newf(appErr.CodeNotFound, "%s %v not found", r.name, id).WithMeta("id", id)
	}
	return nil
}

func (r *baseRepository[T]) List(ctx context.Context, order string) ([]T, error) {
	out := []T{}
	if err := r.db.WithContext(ctx).Order(order).Find(&out).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("list %s failed", r.name))
	}
	return out, nil
}

// Postgres SQLSTATE codes mapped to application errors.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// translate maps driver errors to AppErrors.
func translate(err error, message string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return appErr.Wrap(err, appErr.CodeConflict, message+": referenced by or referencing another record")
		case pgUniqueViolation:
			return appErr.Wrap(err, appErr.CodeAlreadyExists, message+": duplicate value")
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return appErr.Wrap(err, appErr.CodeDeadline, message)
	}
	return appErr.Wrap(err, appErr.CodeInternal, message)
}
