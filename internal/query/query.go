// Package query turns list parameters (search text, page, page size, sort
// order and optional enum filters) into bounded, ordered gorm queries.
package query

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	appErr "github.com/trackr/api/pkg/errors"
	"gorm.io/gorm"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// ParseSortOrder accepts exactly "asc" or "desc"; empty means Desc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "":
		return Desc, nil
	case Asc, Desc:
		return SortOrder(s), nil
	}
	return "", appErr.New(appErr.CodeInvalid, "Invalid sortOrder parameter. Use 'asc' or 'desc'.")
}

// Params describes one page request.
type Params struct {
	Search   string
	Page     int
	PageSize int
	Sort     SortOrder
}

// Offset is the number of rows skipped before the page starts.
func (p Params) Offset() int { return (p.Page - 1) * p.PageSize }

// Page is a slice of results plus the total count matching the filter.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalItems int64 `json:"totalItems"`
}

// Map projects page items into another shape, keeping the total.
func Map[T, U any](p Page[T], f func(T) U) Page[U] {
	out := Page[U]{Items: make([]U, 0, len(p.Items)), TotalItems: p.TotalItems}
	for _, it := range p.Items {
		out.Items = append(out.Items, f(it))
	}
	return out
}

// Values is the subset of url.Values used by ParseParams.
type Values interface {
	Get(key string) string
	Has(key string) bool
}

// ParseParams reads searchValue, page, pageSize and sortOrder.
func ParseParams(v Values) (Params, error) {
	p := Params{
		Search:   v.Get("searchValue"),
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
	var err error
	if p.Page, err = intParam(v, "page", DefaultPage); err != nil {
		return Params{}, err
	}
	if p.PageSize, err = intParam(v, "pageSize", DefaultPageSize); err != nil {
		return Params{}, err
	}
	if p.Page < 1 {
		return Params{}, appErr.New(appErr.CodeInvalid, "page must be at least 1")
	}
	if p.PageSize < 1 {
		return Params{}, appErr.New(appErr.CodeInvalid, "pageSize must be at least 1")
	}
	if p.PageSize > MaxPageSize {
		return Params{}, appErr.Newf(appErr.CodeInvalid, "pageSize must be at most %d", MaxPageSize)
	}
	if p.Page > math.MaxInt/p.PageSize {
		return Params{}, appErr.New(appErr.CodeInvalid, "page is out of range")
	}
	if p.Sort, err = ParseSortOrder(v.Get("sortOrder")); err != nil {
		return Params{}, err
	}
	return p, nil
}

// ParseFilter reads an optional integer enum filter. It returns nil when the
// parameter is absent or empty, so zero stays a real filter value.
func ParseFilter[E ~int](v Values, key string, valid func(E) bool) (*E, error) {
	if !v.Has(key) || v.Get(key) == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v.Get(key))
	if err != nil || !valid(E(n)) {
		return nil, appErr.Newf(appErr.CodeInvalid, "invalid %s %q", key, v.Get(key))
	}
	e := E(n)
	return &e, nil
}

func intParam(v Values, key string, def int) (int, error) {
	s := v.Get(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, appErr.Newf(appErr.CodeInvalid, "%s must be an integer", key)
	}
	return n, nil
}

// Search returns a scope matching column case-insensitively against term.
// An empty term matches every row.
func Search(column, term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		return db.Where(fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", column), pattern)
	}
}

// OrderBy orders by column in the given direction, tie-broken by id.
func OrderBy(column string, order SortOrder) func(*gorm.DB) *gorm.DB {
	dir := "DESC"
	if order == Asc {
		dir = "ASC"
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(fmt.Sprintf("%s %s", column, dir)).Order(fmt.Sprintf("id %s", dir))
	}
}

// Run counts the rows of base and then loads the requested page into Items.
// base must already carry search and filter conditions; ordering and
// preloads are applied by the caller through extra scopes on the page query.
func Run[T any](ctx context.Context, base *gorm.DB, p Params, pageScopes ...func(*gorm.DB) *gorm.DB) (Page[T], error) {
	var total int64
	var model T
	if err := base.WithContext(ctx).Model(&model).Count(&total).Error; err != nil {
		return Page[T]{}, appErr.Wrap(err, appErr.CodeInternal, "count rows failed")
	}

	items := make([]T, 0, p.PageSize)
	if total > int64(p.Offset()) {
		q := base.WithContext(ctx).Model(&model).Scopes(pageScopes...).Offset(p.Offset()).Limit(p.PageSize)
		if err := q.Find(&items).Error; err != nil {
			return Page[T]{}, appErr.Wrap(err, appErr.CodeInternal, "load page failed")
		}
	}
	return Page[T]{Items: items, TotalItems: total}, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
